package wire

import (
	"clinic-backend/internal/adaptor"
	"clinic-backend/internal/data/repository"
	"clinic-backend/pkg/middleware"
	"clinic-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireNote(
	r chi.Router,
	noteHandler *adaptor.NoteHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := middleware.Auth(config.JWT, repo.Session, log)

	r.With(auth).Post("/api/notes", noteHandler.CreateNote)
	r.With(auth).Get("/api/notes/{id}", noteHandler.GetNote)
	r.With(auth).Put("/api/notes/{id}", noteHandler.UpdateNote)
	r.With(auth).Delete("/api/notes/{id}", noteHandler.DeleteNote)

	// Notes listed per patient
	r.With(auth).Get("/api/patients/{id}/notes", noteHandler.ListPatientNotes)
}
