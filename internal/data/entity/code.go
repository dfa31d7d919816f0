package entity

import (
	"time"

	"github.com/google/uuid"
)

// CodePurpose tags a verification code with the flow that issued it. Purposes
// are stored as opaque strings; the store never enumerates them.
type CodePurpose string

const (
	PurposeRegistration  CodePurpose = "registration"
	PurposePasswordReset CodePurpose = "password-reset"
)

// VerificationCode is a short-lived one-time code issued to a user for a
// given purpose. At most one valid code per (user, purpose) is authoritative;
// issuing a new one supersedes the previous.
type VerificationCode struct {
	UserID    uuid.UUID   `db:"user_id"`
	Purpose   CodePurpose `db:"purpose"`
	Code      string      `db:"code"`
	ExpiresAt time.Time   `db:"expires_at"`
	CreatedAt time.Time   `db:"created_at"`
}
