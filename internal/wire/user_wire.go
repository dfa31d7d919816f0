package wire

import (
	"clinic-backend/internal/adaptor"
	"clinic-backend/internal/data/repository"
	"clinic-backend/pkg/middleware"
	"clinic-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := middleware.Auth(config.JWT, repo.Session, log)

	r.With(auth).Get("/api/profile", userHandler.GetProfile)

	// Account overview is admin only
	r.With(auth, middleware.Admin(repo.User, log)).Get("/api/users", userHandler.ListUsers)
}
