package wire

import (
	"clinic-backend/internal/adaptor"
	"clinic-backend/internal/data/repository"
	"clinic-backend/pkg/middleware"
	"clinic-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/confirm", authHandler.ConfirmRegistration)
	r.Post("/api/resend-code", authHandler.ResendCode)
	r.Post("/api/login", authHandler.Login)
	r.Post("/api/forgot-password", authHandler.ForgotPassword)
	r.Post("/api/reset-password", authHandler.ResetPassword)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.Auth(config.JWT, repo.Session, log)).Post("/api/logout", authHandler.Logout)
}
