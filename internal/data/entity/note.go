package entity

import (
	"time"

	"github.com/google/uuid"
)

// Note is a clinical note written by a clinician about a session with a
// patient. Ownership is derived through the patient record.
type Note struct {
	BaseNoDelete
	PatientID   uuid.UUID `db:"patient_id"`
	ClinicianID uuid.UUID `db:"clinician_id"`
	Title       string    `db:"title"`
	Content     string    `db:"content"`
	SessionDate time.Time `db:"session_date"`
}
