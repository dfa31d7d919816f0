package adaptor

import (
	"clinic-backend/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Patient  *PatientHandler
	Note     *NoteHandler
	Material *MaterialHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Patient:  NewPatientHandler(service.Patient, log),
		Note:     NewNoteHandler(service.Note, log),
		Material: NewMaterialHandler(service.Material, log),
	}
}
