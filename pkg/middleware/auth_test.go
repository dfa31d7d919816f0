package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-backend/internal/data/entity"
	"clinic-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// stubUserRepo satisfies repository.UserRepository with a single canned user.
type stubUserRepo struct {
	user *entity.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

func (s *stubUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

func (s *stubUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func adminTestUser(role entity.UserRole) *entity.User {
	now := time.Now()
	return &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FullName:   "Dr. Test",
		Email:      "doc@example.com",
		Role:       role,
		IsVerified: true,
		IsActive:   true,
	}
}

func TestAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	serve := func(repo *stubUserRepo, ctx context.Context) int {
		handler := Admin(repo, zap.NewNop())(ok)
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("admin passes through", func(t *testing.T) {
		user := adminTestUser(entity.RoleAdmin)
		ctx := utils.SetUserContext(context.Background(), user.ID, string(user.Role))

		assert.Equal(t, http.StatusOK, serve(&stubUserRepo{user: user}, ctx))
	})

	t.Run("clinician is forbidden", func(t *testing.T) {
		user := adminTestUser(entity.RoleClinician)
		ctx := utils.SetUserContext(context.Background(), user.ID, string(user.Role))

		assert.Equal(t, http.StatusForbidden, serve(&stubUserRepo{user: user}, ctx))
	})

	t.Run("unknown user is forbidden", func(t *testing.T) {
		ctx := utils.SetUserContext(context.Background(), uuid.New(), string(entity.RoleAdmin))

		assert.Equal(t, http.StatusForbidden, serve(&stubUserRepo{}, ctx))
	})

	t.Run("missing auth context is unauthorized", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(&stubUserRepo{}, context.Background()))
	})
}
