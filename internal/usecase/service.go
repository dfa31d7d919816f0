package usecase

import (
	"clinic-backend/internal/data/repository"
	"clinic-backend/pkg/mailer"
	"clinic-backend/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Verification VerificationService
	User         UserService
	Patient      PatientService
	Note         NoteService
	Material     MaterialService
}

func NewService(repo *repository.Repository, mail mailer.Mailer, config *utils.Config, log *zap.Logger) *Service {
	verification := NewVerificationService(repo.Code, mail, config, log)

	return &Service{
		Auth:         NewAuthService(repo, verification, config, log),
		Verification: verification,
		User:         NewUserService(repo.User, log),
		Patient:      NewPatientService(repo, log),
		Note:         NewNoteService(repo, log),
		Material:     NewMaterialService(repo, log),
	}
}
