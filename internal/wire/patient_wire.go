package wire

import (
	"clinic-backend/internal/adaptor"
	"clinic-backend/internal/data/repository"
	"clinic-backend/pkg/middleware"
	"clinic-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePatient(
	r chi.Router,
	patientHandler *adaptor.PatientHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// All patient routes require an authenticated clinician
	auth := middleware.Auth(config.JWT, repo.Session, log)

	r.With(auth).Post("/api/patients", patientHandler.CreatePatient)
	r.With(auth).Get("/api/patients", patientHandler.ListPatients)
	r.With(auth).Get("/api/patients/{id}", patientHandler.GetPatient)
	r.With(auth).Put("/api/patients/{id}", patientHandler.UpdatePatient)
	r.With(auth).Delete("/api/patients/{id}", patientHandler.DeletePatient)
}
