package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient belongs to exactly one clinician. Ownership is enforced at the
// service layer: a clinician only ever sees their own patients.
type Patient struct {
	Base
	ClinicianID uuid.UUID  `db:"clinician_id"`
	FullName    string     `db:"full_name"`
	Email       *string    `db:"email"`
	Phone       *string    `db:"phone"`
	DateOfBirth *time.Time `db:"date_of_birth"`
	Notes       *string    `db:"notes"`
}
