package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"buildsite-be/internal/config"
	"buildsite-be/internal/domain"
	"buildsite-be/internal/service/auth"
	"buildsite-be/internal/service/notification"
	"buildsite-be/tests/mocks"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
}

type authFixture struct {
	userRepo    *mocks.UserRepository
	sessionRepo *mocks.SessionRepository
	emailSvc    *mocks.EmailService
	notifSvc    notification.Service
	svc         auth.Service
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		userRepo:    new(mocks.UserRepository),
		sessionRepo: new(mocks.SessionRepository),
		emailSvc:    new(mocks.EmailService),
		notifSvc:    notification.NewService(),
	}
	f.svc = auth.NewService(f.userRepo, f.sessionRepo, f.emailSvc, f.notifSvc, testConfig())
	return f
}

func hashedPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	input := domain.CreateUserInput{
		Email:       "founder@example.com",
		Password:    "password1234",
		FullName:    "Founder",
		CompanyName: "Acme Construction",
	}

	t.Run("Success", func(t *testing.T) {
		f := newAuthFixture()

		f.userRepo.On("ExistsByEmail", ctx, input.Email).Return(false, nil).Once()
		f.userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == input.Email && u.Role == string(domain.RoleAdmin) && u.IsActive
		})).Return(nil).Once()
		f.sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.emailSvc.On("SendWelcomeEmail", mock.Anything, input.Email, input.FullName, input.CompanyName).Return(nil).Maybe()

		user, tokens, err := f.svc.Register(ctx, input)

		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.NotEqual(t, uuid.Nil, user.CompanyID)

		// The welcome notification lands in the new user's feed.
		feed := f.notifSvc.Snapshot(user.ID)
		require.Len(t, feed, 1)
		assert.Equal(t, domain.NotifSuccess, feed[0].Type)

		f.userRepo.AssertExpectations(t)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		f := newAuthFixture()
		f.userRepo.On("ExistsByEmail", ctx, input.Email).Return(true, nil).Once()

		_, _, err := f.svc.Register(ctx, input)
		assert.ErrorIs(t, err, auth.ErrEmailExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newAuthFixture()
		user := &domain.User{
			ID:           uuid.New(),
			CompanyID:    uuid.New(),
			Email:        "worker@example.com",
			PasswordHash: hashedPassword(t, "correct-password"),
			IsActive:     true,
		}
		f.userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
		f.sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		_, tokens, err := f.svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "correct-password"})

		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		f := newAuthFixture()
		user := &domain.User{
			ID:           uuid.New(),
			Email:        "worker@example.com",
			PasswordHash: hashedPassword(t, "correct-password"),
			IsActive:     true,
		}
		f.userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := f.svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "wrong"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		f := newAuthFixture()
		f.userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, nil).Once()

		_, _, err := f.svc.Login(ctx, domain.LoginInput{Email: "ghost@example.com", Password: "whatever"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Deactivated Account", func(t *testing.T) {
		f := newAuthFixture()
		user := &domain.User{
			ID:           uuid.New(),
			Email:        "gone@example.com",
			PasswordHash: hashedPassword(t, "correct-password"),
			IsActive:     false,
		}
		f.userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := f.svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "correct-password"})
		assert.ErrorIs(t, err, auth.ErrUserInactive)
	})
}

func TestAuthService_VerifyConnectionToken(t *testing.T) {
	ctx := context.Background()

	issueToken := func(t *testing.T, f *authFixture, user *domain.User) string {
		t.Helper()
		f.userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
		f.sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		_, tokens, err := f.svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "correct-password"})
		require.NoError(t, err)
		return tokens.AccessToken
	}

	t.Run("Valid Token", func(t *testing.T) {
		f := newAuthFixture()
		user := &domain.User{
			ID:           uuid.New(),
			CompanyID:    uuid.New(),
			Email:        "worker@example.com",
			PasswordHash: hashedPassword(t, "correct-password"),
			IsActive:     true,
		}
		token := issueToken(t, f, user)
		f.userRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()

		verified, err := f.svc.VerifyConnectionToken(ctx, token)

		require.NoError(t, err)
		assert.Equal(t, user.ID, verified.ID)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		f := newAuthFixture()
		_, err := f.svc.VerifyConnectionToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Deactivated Since Issue", func(t *testing.T) {
		f := newAuthFixture()
		user := &domain.User{
			ID:           uuid.New(),
			CompanyID:    uuid.New(),
			Email:        "worker@example.com",
			PasswordHash: hashedPassword(t, "correct-password"),
			IsActive:     true,
		}
		token := issueToken(t, f, user)

		deactivated := *user
		deactivated.IsActive = false
		f.userRepo.On("GetByID", ctx, user.ID).Return(&deactivated, nil).Once()

		_, err := f.svc.VerifyConnectionToken(ctx, token)
		assert.ErrorIs(t, err, auth.ErrUserInactive)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown Token", func(t *testing.T) {
		f := newAuthFixture()
		f.sessionRepo.On("GetByTokenHash", ctx, mock.Anything).Return(nil, nil).Once()

		_, err := f.svc.RefreshToken(ctx, "deadbeef")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture()
	userID := uuid.New()
	f.sessionRepo.On("RevokeAllForUser", context.Background(), userID).Return(nil).Once()

	require.NoError(t, f.svc.Logout(context.Background(), userID))
	f.sessionRepo.AssertExpectations(t)
}
