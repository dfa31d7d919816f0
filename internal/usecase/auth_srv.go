package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-backend/internal/data/entity"
	"clinic-backend/internal/data/repository"
	"clinic-backend/internal/dto/request"
	"clinic-backend/internal/dto/response"
	"clinic-backend/internal/metrics"
	"clinic-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	registrationSubject  = "Confirm your account"
	registrationBodyTmpl = "<p>Your confirmation code is: <b>%s</b></p><p>The code expires in %d minutes.</p>"

	passwordResetSubject  = "Reset your password"
	passwordResetBodyTmpl = "<p>Your password reset code is: <b>%s</b></p><p>The code expires in %d minutes.</p>"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	ConfirmRegistration(ctx context.Context, req *request.ConfirmRegistrationRequest) error
	ResendCode(ctx context.Context, req *request.ResendCodeRequest) error
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, sessionID string) error
	ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error
}

type authService struct {
	repo         *repository.Repository
	verification VerificationService
	config       *utils.Config
	log          *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	verification VerificationService,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:         repo,
		verification: verification,
		config:       config,
		log:          log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Check email already registered
	existingUser, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to check email")
	}
	if existingUser != nil {
		return nil, fmt.Errorf("email already registered")
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	// 4. Create user entity
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Phone:        req.Phone,
		Role:         entity.RoleClinician,
		IsVerified:   false,
		IsActive:     true,
	}

	// 5. Save user
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to create account")
	}

	// 6. Send confirmation code. If the mail cannot go out the account would
	// be stuck unverifiable, so the freshly created row is deleted again and
	// the registration fails as a whole.
	if err := s.verification.SendCode(ctx, user.ID, user.Email, entity.PurposeRegistration, registrationSubject, registrationBodyTmpl); err != nil {
		s.log.Error("Failed to send confirmation code, rolling back account",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)

		if delErr := s.repo.User.Delete(ctx, user.ID); delErr != nil {
			s.log.Error("Failed to roll back account",
				zap.Error(delErr),
				zap.String("user_id", user.ID.String()),
			)
		}

		return nil, fmt.Errorf("failed to send confirmation email")
	}

	metrics.RegistrationsTotal.Inc()

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) ConfirmRegistration(ctx context.Context, req *request.ConfirmRegistrationRequest) error {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Confirm registration validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Find user
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("failed to find user")
	}
	if user == nil {
		// Same message as a bad code, nothing to enumerate
		return ErrCodeInvalid
	}

	if user.IsVerified {
		return fmt.Errorf("account already verified")
	}

	// 3. Consume the code
	if err := s.verification.ValidateAndRemove(ctx, user.ID, entity.PurposeRegistration, req.Code); err != nil {
		return err
	}

	// 4. Mark verified
	user.IsVerified = true
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to mark user verified", zap.Error(err), zap.String("user_id", user.ID.String()))
		return fmt.Errorf("failed to verify account")
	}

	s.log.Info("Account verified",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return nil
}

func (s *authService) ResendCode(ctx context.Context, req *request.ResendCodeRequest) error {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Find user
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("failed to find user")
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}

	if user.IsVerified {
		return fmt.Errorf("account already verified")
	}

	// 3. Issue a fresh code; the previous one is superseded
	return s.verification.SendCode(ctx, user.ID, user.Email, entity.PurposeRegistration, registrationSubject, registrationBodyTmpl)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Find user by email
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to find user")
	}

	if user == nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, fmt.Errorf("invalid credentials")
	}

	// 3. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("invalid credentials")
	}

	// 4. Check account state
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("account is deactivated")
	}

	if !user.IsVerified {
		s.log.Warn("Unverified user tried to login", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("account not verified")
	}

	// 5. Create session + access token
	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to create session")
	}

	token, err := utils.SignAccessToken(s.config.JWT, user.ID, string(user.Role), session.ID)
	if err != nil {
		s.log.Error("Failed to sign access token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to create session")
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return &response.AuthResponse{
		UserID:      user.ID.String(),
		AccessToken: token,
		ExpiresAt:   session.ExpiresAt,
		Email:       user.Email,
		FullName:    user.FullName,
		Role:        user.Role,
		IsVerified:  user.IsVerified,
	}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	// 1. Parse session ID
	sessionUUID, err := uuid.Parse(sessionID)
	if err != nil {
		s.log.Warn("Invalid session ID format", zap.String("session_id", sessionID), zap.Error(err))
		return fmt.Errorf("invalid session format")
	}

	// 2. Revoke session
	if err := s.repo.Session.Revoke(ctx, sessionUUID.String()); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err), zap.String("session_id", sessionID))
		return fmt.Errorf("failed to logout")
	}

	s.log.Info("User logged out", zap.String("session_id", sessionID))
	return nil
}

func (s *authService) ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Find user. An unknown email gets the same success response from the
	// handler, so don't reveal anything here either.
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("failed to find user")
	}
	if user == nil {
		s.log.Info("Password reset requested for unknown email", zap.String("email", req.Email))
		return nil
	}

	// 3. Send reset code
	return s.verification.SendCode(ctx, user.ID, user.Email, entity.PurposePasswordReset, passwordResetSubject, passwordResetBodyTmpl)
}

func (s *authService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Find user
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("failed to find user")
	}
	if user == nil {
		return ErrCodeInvalid
	}

	// 3. Consume the code
	if err := s.verification.ValidateAndRemove(ctx, user.ID, entity.PurposePasswordReset, req.Code); err != nil {
		return err
	}

	// 4. Replace password hash
	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("failed to process password")
	}

	if err := s.repo.User.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		s.log.Error("Failed to update password", zap.Error(err), zap.String("user_id", user.ID.String()))
		return fmt.Errorf("failed to reset password")
	}

	// 5. Force re-login everywhere
	if err := s.repo.Session.RevokeAllUserSessions(ctx, user.ID); err != nil {
		s.log.Warn("Failed to revoke sessions after password reset",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		// Continue anyway
	}

	s.log.Info("Password reset",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Duration(s.config.JWT.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// IsCodeError reports whether err is the uniform invalid-code failure.
func IsCodeError(err error) bool {
	return errors.Is(err, ErrCodeInvalid)
}
