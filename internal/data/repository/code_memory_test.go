package repository

import (
	"context"
	"testing"
	"time"

	"clinic-backend/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCode(userID uuid.UUID, purpose entity.CodePurpose, code string, ttl time.Duration) *entity.VerificationCode {
	now := time.Now()
	return &entity.VerificationCode{
		UserID:    userID,
		Purpose:   purpose,
		Code:      code,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

func TestMemoryCodeRepository(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Put and Get", func(t *testing.T) {
		repo := NewMemoryCodeRepository(zap.NewNop())

		err := repo.Put(ctx, newCode(userID, entity.PurposeRegistration, "ABCD1234", time.Minute))
		require.NoError(t, err)

		vc, err := repo.Get(ctx, userID, entity.PurposeRegistration, "ABCD1234")
		require.NoError(t, err)
		require.NotNil(t, vc)
		assert.Equal(t, "ABCD1234", vc.Code)
		assert.Equal(t, userID, vc.UserID)
	})

	t.Run("Get with wrong code", func(t *testing.T) {
		repo := NewMemoryCodeRepository(zap.NewNop())

		require.NoError(t, repo.Put(ctx, newCode(userID, entity.PurposeRegistration, "ABCD1234", time.Minute)))

		vc, err := repo.Get(ctx, userID, entity.PurposeRegistration, "WRONG000")
		require.NoError(t, err)
		assert.Nil(t, vc)
	})

	t.Run("Get expired code", func(t *testing.T) {
		repo := NewMemoryCodeRepository(zap.NewNop())

		require.NoError(t, repo.Put(ctx, newCode(userID, entity.PurposeRegistration, "ABCD1234", -time.Minute)))

		vc, err := repo.Get(ctx, userID, entity.PurposeRegistration, "ABCD1234")
		require.NoError(t, err)
		assert.Nil(t, vc)
	})

	t.Run("Get never-issued code", func(t *testing.T) {
		repo := NewMemoryCodeRepository(zap.NewNop())

		vc, err := repo.Get(ctx, userID, entity.PurposeRegistration, "ABCD1234")
		require.NoError(t, err)
		assert.Nil(t, vc)
	})

	t.Run("Put supersedes previous code", func(t *testing.T) {
		repo := NewMemoryCodeRepository(zap.NewNop())

		require.NoError(t, repo.Put(ctx, newCode(userID, entity.PurposeRegistration, "FIRST111", time.Minute)))
		require.NoError(t, repo.Put(ctx, newCode(userID, entity.PurposeRegistration, "SECOND22", time.Minute)))

		vc, err := repo.Get(ctx, userID, entity.PurposeRegistration, "FIRST111")
		require.NoError(t, err)
		assert.Nil(t, vc, "superseded code must no longer validate")

		vc, err = repo.Get(ctx, userID, entity.PurposeRegistration, "SECOND22")
		require.NoError(t, err)
		require.NotNil(t, vc)
		assert.Equal(t, "SECOND22", vc.Code)
	})

	t.Run("Purposes are independent", func(t *testing.T) {
		repo := NewMemoryCodeRepository(zap.NewNop())

		require.NoError(t, repo.Put(ctx, newCode(userID, entity.PurposeRegistration, "REGCODE1", time.Minute)))
		require.NoError(t, repo.Put(ctx, newCode(userID, entity.PurposePasswordReset, "RSTCODE1", time.Minute)))

		vc, err := repo.Get(ctx, userID, entity.PurposeRegistration, "REGCODE1")
		require.NoError(t, err)
		assert.NotNil(t, vc)

		vc, err = repo.Get(ctx, userID, entity.PurposePasswordReset, "RSTCODE1")
		require.NoError(t, err)
		assert.NotNil(t, vc)

		// A code issued for one purpose never validates under another
		vc, err = repo.Get(ctx, userID, entity.PurposePasswordReset, "REGCODE1")
		require.NoError(t, err)
		assert.Nil(t, vc)
	})

	t.Run("Remove deletes exact entry", func(t *testing.T) {
		repo := NewMemoryCodeRepository(zap.NewNop())

		require.NoError(t, repo.Put(ctx, newCode(userID, entity.PurposeRegistration, "ABCD1234", time.Minute)))
		require.NoError(t, repo.Remove(ctx, userID, entity.PurposeRegistration, "ABCD1234"))

		vc, err := repo.Get(ctx, userID, entity.PurposeRegistration, "ABCD1234")
		require.NoError(t, err)
		assert.Nil(t, vc)
	})

	t.Run("Remove with non-matching code is a no-op", func(t *testing.T) {
		repo := NewMemoryCodeRepository(zap.NewNop())

		require.NoError(t, repo.Put(ctx, newCode(userID, entity.PurposeRegistration, "ABCD1234", time.Minute)))
		require.NoError(t, repo.Remove(ctx, userID, entity.PurposeRegistration, "WRONG000"))

		vc, err := repo.Get(ctx, userID, entity.PurposeRegistration, "ABCD1234")
		require.NoError(t, err)
		assert.NotNil(t, vc, "pending code must survive a mismatched Remove")
	})

	t.Run("Remove when absent is a no-op", func(t *testing.T) {
		repo := NewMemoryCodeRepository(zap.NewNop())

		assert.NoError(t, repo.Remove(ctx, userID, entity.PurposeRegistration, "ABCD1234"))
	})

	t.Run("RemoveAll is idempotent", func(t *testing.T) {
		repo := NewMemoryCodeRepository(zap.NewNop())

		require.NoError(t, repo.Put(ctx, newCode(userID, entity.PurposeRegistration, "ABCD1234", time.Minute)))
		require.NoError(t, repo.RemoveAll(ctx, userID, entity.PurposeRegistration))
		require.NoError(t, repo.RemoveAll(ctx, userID, entity.PurposeRegistration))

		vc, err := repo.Get(ctx, userID, entity.PurposeRegistration, "ABCD1234")
		require.NoError(t, err)
		assert.Nil(t, vc)
	})

	t.Run("Remove sweeps expired entries of other users", func(t *testing.T) {
		repo := NewMemoryCodeRepository(zap.NewNop())
		mem := repo.(*memoryCodeRepository)

		otherID := uuid.New()
		require.NoError(t, repo.Put(ctx, newCode(otherID, entity.PurposeRegistration, "STALE000", -time.Minute)))
		require.NoError(t, repo.Put(ctx, newCode(userID, entity.PurposeRegistration, "ABCD1234", time.Minute)))

		require.NoError(t, repo.Remove(ctx, userID, entity.PurposeRegistration, "ABCD1234"))

		mem.mu.RLock()
		defer mem.mu.RUnlock()
		assert.Empty(t, mem.codes, "expired entries are purged lazily on Remove")
	})
}
