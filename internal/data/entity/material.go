package entity

import (
	"github.com/google/uuid"
)

// Material is a document or link a clinician shares with a patient for a
// session (worksheets, recordings, reading).
type Material struct {
	BaseNoDelete
	PatientID   uuid.UUID `db:"patient_id"`
	ClinicianID uuid.UUID `db:"clinician_id"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	URL         string    `db:"url"`
	ContentType *string   `db:"content_type"`
}
