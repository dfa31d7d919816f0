package repository

import (
	"context"
	"sync"
	"time"

	"clinic-backend/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type codeKey struct {
	userID  uuid.UUID
	purpose entity.CodePurpose
}

// memoryCodeRepository is the volatile code store: a mutex-guarded map keyed
// by (user, purpose), lost on restart. Expired entries are purged lazily
// whenever Remove or RemoveAll runs; there is no background timer.
type memoryCodeRepository struct {
	mu    sync.RWMutex
	codes map[codeKey]*entity.VerificationCode
	log   *zap.Logger
}

func NewMemoryCodeRepository(log *zap.Logger) CodeRepository {
	return &memoryCodeRepository{
		codes: make(map[codeKey]*entity.VerificationCode),
		log:   log.With(zap.String("repository", "code_memory")),
	}
}

func (r *memoryCodeRepository) Put(ctx context.Context, code *entity.VerificationCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *code
	r.codes[codeKey{userID: code.UserID, purpose: code.Purpose}] = &cp
	return nil
}

func (r *memoryCodeRepository) Get(ctx context.Context, userID uuid.UUID, purpose entity.CodePurpose, code string) (*entity.VerificationCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vc, ok := r.codes[codeKey{userID: userID, purpose: purpose}]
	if !ok || vc.Code != code || !vc.ExpiresAt.After(time.Now()) {
		return nil, nil
	}

	cp := *vc
	return &cp, nil
}

func (r *memoryCodeRepository) Remove(ctx context.Context, userID uuid.UUID, purpose entity.CodePurpose, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := codeKey{userID: userID, purpose: purpose}
	if vc, ok := r.codes[key]; ok && vc.Code == code {
		delete(r.codes, key)
	}

	r.sweepLocked()
	return nil
}

func (r *memoryCodeRepository) RemoveAll(ctx context.Context, userID uuid.UUID, purpose entity.CodePurpose) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.codes, codeKey{userID: userID, purpose: purpose})

	r.sweepLocked()
	return nil
}

// sweepLocked purges every expired entry. Caller must hold the write lock.
func (r *memoryCodeRepository) sweepLocked() {
	now := time.Now()
	for key, vc := range r.codes {
		if !vc.ExpiresAt.After(now) {
			delete(r.codes, key)
		}
	}
}
