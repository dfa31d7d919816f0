package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-backend/internal/data/entity"
	"clinic-backend/internal/data/repository"
	"clinic-backend/internal/metrics"
	"clinic-backend/pkg/mailer"
	"clinic-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrCodeInvalid is the uniform failure for every rejected validation. Wrong
// code, expired code and never-issued code are indistinguishable to the
// caller so the endpoint cannot be used to probe which codes exist.
var ErrCodeInvalid = errors.New("invalid or expired code")

// VerificationService orchestrates the one-time code flow: generate a code,
// store it, email it, and later consume it exactly once.
//
// Per (user, purpose) the flow is a two-state machine: no active code, or one
// pending unexpired code. SendCode always moves to pending and supersedes any
// earlier code; ValidateAndRemove moves back on success and is a no-op on
// failure.
type VerificationService interface {
	// SendCode issues a fresh code for (userID, purpose), stores it and mails
	// it to email. bodyTemplate must contain a %s verb for the code followed
	// by a %d verb for the expiry in minutes. The code is stored before the
	// mail goes out; if the send fails the error propagates and the stored
	// code is simply never delivered.
	SendCode(ctx context.Context, userID uuid.UUID, email string, purpose entity.CodePurpose, subject, bodyTemplate string) error

	// ValidateAndRemove consumes the code: on a match it deletes the entry
	// and returns nil, so a second attempt with the same code fails. Any
	// failure returns ErrCodeInvalid without mutating state.
	ValidateAndRemove(ctx context.Context, userID uuid.UUID, purpose entity.CodePurpose, code string) error
}

type verificationService struct {
	codeRepo   repository.CodeRepository
	mail       mailer.Mailer
	expiry     time.Duration
	codeLength int
	log        *zap.Logger
}

func NewVerificationService(
	codeRepo repository.CodeRepository,
	mail mailer.Mailer,
	config *utils.Config,
	log *zap.Logger,
) VerificationService {
	return &verificationService{
		codeRepo:   codeRepo,
		mail:       mail,
		expiry:     time.Duration(config.Verification.ExpiryMinutes) * time.Minute,
		codeLength: config.Verification.CodeLength,
		log:        log.With(zap.String("service", "verification")),
	}
}

func (s *verificationService) SendCode(ctx context.Context, userID uuid.UUID, email string, purpose entity.CodePurpose, subject, bodyTemplate string) error {
	code := utils.GenerateCode(s.codeLength)
	now := time.Now()

	vc := &entity.VerificationCode{
		UserID:    userID,
		Purpose:   purpose,
		Code:      code,
		ExpiresAt: now.Add(s.expiry),
		CreatedAt: now,
	}

	// Store first. Regeneration supersedes the previous code and resets the
	// timer, whether or not one was already pending.
	if err := s.codeRepo.Put(ctx, vc); err != nil {
		s.log.Error("Failed to store verification code",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("purpose", string(purpose)),
		)
		return fmt.Errorf("store verification code: %w", err)
	}

	body := fmt.Sprintf(bodyTemplate, code, int(s.expiry.Minutes()))
	if err := s.mail.Send(email, subject, body); err != nil {
		s.log.Error("Failed to send verification code",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("purpose", string(purpose)),
		)
		return fmt.Errorf("send verification code: %w", err)
	}

	metrics.CodesIssuedTotal.WithLabelValues(string(purpose)).Inc()

	s.log.Info("Verification code sent",
		zap.String("user_id", userID.String()),
		zap.String("purpose", string(purpose)),
		zap.Time("expires_at", vc.ExpiresAt),
	)

	return nil
}

func (s *verificationService) ValidateAndRemove(ctx context.Context, userID uuid.UUID, purpose entity.CodePurpose, code string) error {
	vc, err := s.codeRepo.Get(ctx, userID, purpose, code)
	if err != nil {
		s.log.Error("Failed to look up verification code",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("purpose", string(purpose)),
		)
		return fmt.Errorf("look up verification code: %w", err)
	}

	if vc == nil {
		metrics.CodeValidationsTotal.WithLabelValues(string(purpose), "failed").Inc()
		return ErrCodeInvalid
	}

	// Destructive read: the code is single-use, so it is deleted the moment
	// it validates.
	if err := s.codeRepo.Remove(ctx, userID, purpose, code); err != nil {
		s.log.Error("Failed to remove consumed code",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("purpose", string(purpose)),
		)
		return fmt.Errorf("remove consumed code: %w", err)
	}

	metrics.CodeValidationsTotal.WithLabelValues(string(purpose), "success").Inc()

	s.log.Info("Verification code consumed",
		zap.String("user_id", userID.String()),
		zap.String("purpose", string(purpose)),
	)

	return nil
}
