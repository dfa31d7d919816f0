package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"clinic-backend/internal/data/entity"
	"clinic-backend/internal/data/repository"
	"clinic-backend/internal/dto/request"
	"clinic-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var codeInBody = regexp.MustCompile(`<b>([A-Z0-9]{8})</b>`)

type authFixture struct {
	users    *mockUserRepository
	sessions *mockSessionRepository
	codes    repository.CodeRepository
	mail     *mockMailer
	svc      AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	cfg := &utils.Config{
		JWT: utils.JWTConfig{
			Secret:      "test-secret",
			ExpiryHours: 1,
		},
		Verification: utils.VerificationConfig{
			ExpiryMinutes: 15,
			CodeLength:    8,
		},
	}

	users := new(mockUserRepository)
	sessions := new(mockSessionRepository)
	codes := repository.NewMemoryCodeRepository(zap.NewNop())
	mail := new(mockMailer)

	repo := &repository.Repository{
		User:    users,
		Session: sessions,
		Code:    codes,
	}

	verification := NewVerificationService(codes, mail, cfg, zap.NewNop())

	return &authFixture{
		users:    users,
		sessions: sessions,
		codes:    codes,
		mail:     mail,
		svc:      NewAuthService(repo, verification, cfg, zap.NewNop()),
	}
}

func verifiedUser(t *testing.T, email, password string) *entity.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	now := time.Now()
	return &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FullName:     "Dr. Test",
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleClinician,
		IsVerified:   true,
		IsActive:     true,
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	req := &request.RegisterRequest{
		FullName: "Dr. Test",
		Email:    "doc@example.com",
		Password: "password123",
	}

	t.Run("success stores a pending code", func(t *testing.T) {
		f := newAuthFixture(t)

		f.users.On("FindByEmail", mock.Anything, req.Email).Return(nil, nil)
		f.users.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)

		var body string
		f.mail.On("Send", req.Email, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { body = args.String(2) }).
			Return(nil)

		resp, err := f.svc.Register(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, req.Email, resp.Email)
		assert.False(t, resp.IsVerified)

		// The stated expiry follows the configured window
		assert.Contains(t, body, "expires in 15 minutes")

		// The mailed code must be the one the store holds
		match := codeInBody.FindStringSubmatch(body)
		require.Len(t, match, 2)

		userID, err := uuid.Parse(resp.ID)
		require.NoError(t, err)

		vc, err := f.codes.Get(ctx, userID, entity.PurposeRegistration, match[1])
		require.NoError(t, err)
		assert.NotNil(t, vc)

		f.users.AssertExpectations(t)
		f.mail.AssertExpectations(t)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		f := newAuthFixture(t)

		f.users.On("FindByEmail", mock.Anything, req.Email).
			Return(verifiedUser(t, req.Email, "password123"), nil)

		_, err := f.svc.Register(ctx, req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")

		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("mail failure rolls back the account", func(t *testing.T) {
		f := newAuthFixture(t)

		f.users.On("FindByEmail", mock.Anything, req.Email).Return(nil, nil)
		f.users.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)
		f.users.On("Delete", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil)
		f.mail.On("Send", mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("smtp unreachable"))

		_, err := f.svc.Register(ctx, req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send confirmation email")

		f.users.AssertCalled(t, "Delete", mock.Anything, mock.AnythingOfType("uuid.UUID"))
	})
}

func TestConfirmRegistration(t *testing.T) {
	ctx := context.Background()

	seedCode := func(t *testing.T, f *authFixture, userID uuid.UUID, code string) {
		t.Helper()
		now := time.Now()
		require.NoError(t, f.codes.Put(ctx, &entity.VerificationCode{
			UserID:    userID,
			Purpose:   entity.PurposeRegistration,
			Code:      code,
			ExpiresAt: now.Add(15 * time.Minute),
			CreatedAt: now,
		}))
	}

	t.Run("valid code marks the account verified", func(t *testing.T) {
		f := newAuthFixture(t)

		user := verifiedUser(t, "doc@example.com", "password123")
		user.IsVerified = false

		seedCode(t, f, user.ID, "ABCD1234")

		f.users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
		f.users.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
			return u.ID == user.ID && u.IsVerified
		})).Return(nil)

		err := f.svc.ConfirmRegistration(ctx, &request.ConfirmRegistrationRequest{
			Email: user.Email,
			Code:  "ABCD1234",
		})
		require.NoError(t, err)

		// The code was consumed
		vc, err := f.codes.Get(ctx, user.ID, entity.PurposeRegistration, "ABCD1234")
		require.NoError(t, err)
		assert.Nil(t, vc)

		f.users.AssertExpectations(t)
	})

	t.Run("wrong code leaves the account unverified", func(t *testing.T) {
		f := newAuthFixture(t)

		user := verifiedUser(t, "doc@example.com", "password123")
		user.IsVerified = false

		seedCode(t, f, user.ID, "ABCD1234")

		f.users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

		err := f.svc.ConfirmRegistration(ctx, &request.ConfirmRegistrationRequest{
			Email: user.Email,
			Code:  "WRONG000",
		})
		assert.ErrorIs(t, err, ErrCodeInvalid)

		f.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown email gets the uniform code error", func(t *testing.T) {
		f := newAuthFixture(t)

		f.users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

		err := f.svc.ConfirmRegistration(ctx, &request.ConfirmRegistrationRequest{
			Email: "nobody@example.com",
			Code:  "ABCD1234",
		})
		assert.ErrorIs(t, err, ErrCodeInvalid)
	})

	t.Run("already verified account rejected", func(t *testing.T) {
		f := newAuthFixture(t)

		user := verifiedUser(t, "doc@example.com", "password123")
		f.users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

		err := f.svc.ConfirmRegistration(ctx, &request.ConfirmRegistrationRequest{
			Email: user.Email,
			Code:  "ABCD1234",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already verified")
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns token and session", func(t *testing.T) {
		f := newAuthFixture(t)

		user := verifiedUser(t, "doc@example.com", "password123")
		f.users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
		f.sessions.On("Create", mock.Anything, mock.AnythingOfType("*entity.Session")).Return(nil)

		resp, err := f.svc.Login(ctx, &request.LoginRequest{
			Email:    user.Email,
			Password: "password123",
		})
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, user.ID.String(), resp.UserID)
		assert.True(t, resp.ExpiresAt.After(time.Now()))

		f.sessions.AssertExpectations(t)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		f := newAuthFixture(t)

		user := verifiedUser(t, "doc@example.com", "password123")
		f.users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

		_, err := f.svc.Login(ctx, &request.LoginRequest{
			Email:    user.Email,
			Password: "wrongpassword",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid credentials")
	})

	t.Run("unknown email gets the same error as wrong password", func(t *testing.T) {
		f := newAuthFixture(t)

		f.users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

		_, err := f.svc.Login(ctx, &request.LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid credentials")
	})

	t.Run("unverified account rejected", func(t *testing.T) {
		f := newAuthFixture(t)

		user := verifiedUser(t, "doc@example.com", "password123")
		user.IsVerified = false
		f.users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

		_, err := f.svc.Login(ctx, &request.LoginRequest{
			Email:    user.Email,
			Password: "password123",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not verified")
	})
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("forgot password for unknown email is silent", func(t *testing.T) {
		f := newAuthFixture(t)

		f.users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

		err := f.svc.ForgotPassword(ctx, &request.ForgotPasswordRequest{Email: "nobody@example.com"})
		assert.NoError(t, err)

		f.mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("reset replaces the password and revokes sessions", func(t *testing.T) {
		f := newAuthFixture(t)

		user := verifiedUser(t, "doc@example.com", "oldpassword1")

		now := time.Now()
		require.NoError(t, f.codes.Put(ctx, &entity.VerificationCode{
			UserID:    user.ID,
			Purpose:   entity.PurposePasswordReset,
			Code:      "RSET1234",
			ExpiresAt: now.Add(15 * time.Minute),
			CreatedAt: now,
		}))

		f.users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

		var newHash string
		f.users.On("UpdatePassword", mock.Anything, user.ID, mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) { newHash = args.String(2) }).
			Return(nil)
		f.sessions.On("RevokeAllUserSessions", mock.Anything, user.ID).Return(nil)

		err := f.svc.ResetPassword(ctx, &request.ResetPasswordRequest{
			Email:       user.Email,
			Code:        "RSET1234",
			NewPassword: "newpassword1",
		})
		require.NoError(t, err)

		assert.True(t, utils.CheckPasswordHash("newpassword1", newHash))
		f.sessions.AssertExpectations(t)

		// Reset code is single-use
		err = f.svc.ResetPassword(ctx, &request.ResetPasswordRequest{
			Email:       user.Email,
			Code:        "RSET1234",
			NewPassword: "newpassword2",
		})
		assert.ErrorIs(t, err, ErrCodeInvalid)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes the session", func(t *testing.T) {
		f := newAuthFixture(t)

		sessionID := uuid.New()
		f.sessions.On("Revoke", mock.Anything, sessionID.String()).Return(nil)

		err := f.svc.Logout(ctx, sessionID.String())
		assert.NoError(t, err)

		f.sessions.AssertExpectations(t)
	})

	t.Run("malformed session id rejected", func(t *testing.T) {
		f := newAuthFixture(t)

		err := f.svc.Logout(ctx, "not-a-uuid")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid session format")
	})
}
