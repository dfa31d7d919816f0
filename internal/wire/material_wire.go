package wire

import (
	"clinic-backend/internal/adaptor"
	"clinic-backend/internal/data/repository"
	"clinic-backend/pkg/middleware"
	"clinic-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMaterial(
	r chi.Router,
	materialHandler *adaptor.MaterialHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := middleware.Auth(config.JWT, repo.Session, log)

	r.With(auth).Post("/api/materials", materialHandler.CreateMaterial)
	r.With(auth).Get("/api/materials/{id}", materialHandler.GetMaterial)
	r.With(auth).Put("/api/materials/{id}", materialHandler.UpdateMaterial)
	r.With(auth).Delete("/api/materials/{id}", materialHandler.DeleteMaterial)

	// Materials listed per patient
	r.With(auth).Get("/api/patients/{id}/materials", materialHandler.ListPatientMaterials)
}
