package repository

import (
	"context"
	"fmt"

	"clinic-backend/internal/data/entity"
	"clinic-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CodeRepository owns the (user, purpose) -> (code, expiry) mapping used by
// the verification flow. Get behaves as not-found for wrong, expired and
// never-issued codes alike; callers see one uniform failure.
type CodeRepository interface {
	// Put stores the code, superseding any previous code for the same
	// (user, purpose) pair.
	Put(ctx context.Context, code *entity.VerificationCode) error
	// Get returns the entry only if the stored code matches and its expiry
	// is strictly in the future; (nil, nil) otherwise.
	Get(ctx context.Context, userID uuid.UUID, purpose entity.CodePurpose, code string) (*entity.VerificationCode, error)
	// Remove deletes the exact entry if present; no-op if absent.
	Remove(ctx context.Context, userID uuid.UUID, purpose entity.CodePurpose, code string) error
	// RemoveAll deletes every entry for the (user, purpose) pair.
	RemoveAll(ctx context.Context, userID uuid.UUID, purpose entity.CodePurpose) error
}

type codeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

// NewCodeRepository returns the durable, Postgres-backed code store.
// Rows live in verification_codes with a composite primary key on
// (user_id, code, purpose); stale rows are only removed by Remove/RemoveAll.
func NewCodeRepository(db database.PgxIface, log *zap.Logger) CodeRepository {
	return &codeRepository{
		db:  db,
		log: log.With(zap.String("repository", "code")),
	}
}

func (r *codeRepository) Put(ctx context.Context, code *entity.VerificationCode) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin put code: %w", err)
	}
	defer tx.Rollback(ctx)

	// Supersede any previous code for the pair so the newest one is the
	// only row both backends ever hold.
	_, err = tx.Exec(ctx,
		`DELETE FROM verification_codes WHERE user_id = $1 AND purpose = $2`,
		code.UserID, code.Purpose,
	)
	if err != nil {
		r.log.Error("Failed to supersede previous codes",
			zap.Error(err),
			zap.String("user_id", code.UserID.String()),
			zap.String("purpose", string(code.Purpose)),
		)
		return fmt.Errorf("supersede codes for %s: %w", code.UserID.String(), err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO verification_codes (user_id, code, purpose, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		code.UserID,
		code.Code,
		code.Purpose,
		code.ExpiresAt,
		code.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to store code",
			zap.Error(err),
			zap.String("user_id", code.UserID.String()),
			zap.String("purpose", string(code.Purpose)),
		)
		return fmt.Errorf("store code for %s: %w", code.UserID.String(), err)
	}

	return tx.Commit(ctx)
}

func (r *codeRepository) Get(ctx context.Context, userID uuid.UUID, purpose entity.CodePurpose, code string) (*entity.VerificationCode, error) {
	query := `
		SELECT user_id, code, purpose, expires_at, created_at
		FROM verification_codes
		WHERE user_id = $1
		  AND purpose = $2
		  AND code = $3
		  AND expires_at > NOW()
	`

	var vc entity.VerificationCode
	err := r.db.QueryRow(ctx, query, userID, purpose, code).Scan(
		&vc.UserID,
		&vc.Code,
		&vc.Purpose,
		&vc.ExpiresAt,
		&vc.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to look up code",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("purpose", string(purpose)),
		)
		return nil, fmt.Errorf("look up code for %s: %w", userID.String(), err)
	}

	return &vc, nil
}

func (r *codeRepository) Remove(ctx context.Context, userID uuid.UUID, purpose entity.CodePurpose, code string) error {
	query := `
		DELETE FROM verification_codes
		WHERE user_id = $1 AND purpose = $2 AND code = $3
	`

	_, err := r.db.Exec(ctx, query, userID, purpose, code)
	if err != nil {
		r.log.Error("Failed to remove code",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("purpose", string(purpose)),
		)
		return fmt.Errorf("remove code for %s: %w", userID.String(), err)
	}

	return nil
}

func (r *codeRepository) RemoveAll(ctx context.Context, userID uuid.UUID, purpose entity.CodePurpose) error {
	query := `
		DELETE FROM verification_codes
		WHERE user_id = $1 AND purpose = $2
	`

	_, err := r.db.Exec(ctx, query, userID, purpose)
	if err != nil {
		r.log.Error("Failed to remove codes",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("purpose", string(purpose)),
		)
		return fmt.Errorf("remove codes for %s: %w", userID.String(), err)
	}

	return nil
}
