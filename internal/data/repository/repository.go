package repository

import (
	"clinic-backend/pkg/database"
	"clinic-backend/pkg/utils"

	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Session  SessionRepository
	Code     CodeRepository
	Patient  PatientRepository
	Note     NoteRepository
	Material MaterialRepository
}

func NewRepository(db database.PgxIface, config *utils.Config, log *zap.Logger) *Repository {
	// The code store is swappable: durable rows in Postgres by default, or a
	// process-lifetime map for single-node setups and tests.
	var code CodeRepository
	if config.Verification.Store == "memory" {
		code = NewMemoryCodeRepository(log)
	} else {
		code = NewCodeRepository(db, log)
	}

	return &Repository{
		User:     NewUserRepository(db, log),
		Session:  NewSessionRepository(db, log),
		Code:     code,
		Patient:  NewPatientRepository(db, log),
		Note:     NewNoteRepository(db, log),
		Material: NewMaterialRepository(db, log),
	}
}
