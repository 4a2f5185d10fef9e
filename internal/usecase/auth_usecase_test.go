package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"job-board-backend/internal/domain"
	"job-board-backend/internal/usecase"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

func newUser(t *testing.T, plain string) *domain.User {
	t.Helper()
	u := &domain.User{ID: bson.NewObjectID(), Email: "john@example.com", FirstName: "John"}
	require.NoError(t, u.SetPassword(plain))
	return u
}

func assertAppError(t *testing.T, err error, code int, message string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}

func newAuth(repo domain.AccountRepository, tokens domain.TokenIssuer, guard domain.LoginGuard, mailer domain.ResetMailer) domain.AuthUsecase {
	return usecase.NewAuthUsecase(
		usecase.AuthConfig{Kind: domain.KindUser, ResetTTL: 10 * time.Minute},
		repo, tokens, guard, mailer, zap.NewNop(),
	)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Should require email and password", func(t *testing.T) {
		uc := newAuth(new(MockAccountRepo), new(MockTokens), nil, nil)
		_, err := uc.Login(ctx, domain.LoginRequest{Email: "john@example.com"})
		assertAppError(t, err, http.StatusBadRequest, "Please input your email and password")
	})

	t.Run("Should reject unknown email", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("FindAccountByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrNotFound)
		uc := newAuth(repo, new(MockTokens), nil, nil)

		_, err := uc.Login(ctx, domain.LoginRequest{Email: " Ghost@Example.com ", Password: "x"})
		assertAppError(t, err, http.StatusUnauthorized, "Invalid credentials")
	})

	t.Run("Should reject mismatched password and count the failure", func(t *testing.T) {
		user := newUser(t, "Passw0rd!")
		repo := new(MockAccountRepo)
		repo.On("FindAccountByEmail", ctx, "john@example.com").Return(user, nil)
		guard := new(MockGuard)
		guard.On("IsBlocked", ctx, "john@example.com").Return(false, nil)
		guard.On("RecordFailedAttempt", ctx, "john@example.com", "10.0.0.1", "", "").Return(false, nil)
		tokens := new(MockTokens)

		uc := newAuth(repo, tokens, guard, nil)
		token, err := uc.Login(ctx, domain.LoginRequest{Email: "john@example.com", Password: "wrong", IP: "10.0.0.1"})

		assertAppError(t, err, http.StatusUnauthorized, "Credentials do not match!")
		assert.Empty(t, token)
		guard.AssertExpectations(t)
		tokens.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
	})

	t.Run("Should refuse blocked email", func(t *testing.T) {
		guard := new(MockGuard)
		guard.On("IsBlocked", ctx, "john@example.com").Return(true, nil)
		repo := new(MockAccountRepo)

		uc := newAuth(repo, new(MockTokens), guard, nil)
		_, err := uc.Login(ctx, domain.LoginRequest{Email: "john@example.com", Password: "Passw0rd!"})

		assertAppError(t, err, http.StatusTooManyRequests, "")
		repo.AssertNotCalled(t, "FindAccountByEmail", mock.Anything, mock.Anything)
	})

	t.Run("Should issue token on valid credentials", func(t *testing.T) {
		user := newUser(t, "Passw0rd!")
		repo := new(MockAccountRepo)
		repo.On("FindAccountByEmail", ctx, "john@example.com").Return(user, nil)
		guard := new(MockGuard)
		guard.On("IsBlocked", ctx, "john@example.com").Return(false, nil)
		guard.On("ClearAttempts", ctx, "john@example.com").Return(nil)
		tokens := new(MockTokens)
		tokens.On("Issue", user.ID.Hex(), domain.KindUser).Return("signed.jwt", nil)

		uc := newAuth(repo, tokens, guard, nil)
		token, err := uc.Login(ctx, domain.LoginRequest{Email: "john@example.com", Password: "Passw0rd!"})

		require.NoError(t, err)
		assert.Equal(t, "signed.jwt", token)
		guard.AssertExpectations(t)
	})
}

func TestForgotPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Should store the digest of the returned token", func(t *testing.T) {
		user := newUser(t, "Passw0rd!")
		repo := new(MockAccountRepo)
		repo.On("FindAccountByEmail", ctx, "john@example.com").Return(user, nil)

		var saved domain.Credentials
		repo.On("SaveCredentials", ctx, user.ID.Hex(), mock.AnythingOfType("domain.Credentials")).Return(nil).Run(func(args mock.Arguments) {
			saved = args.Get(2).(domain.Credentials)
		})
		mailer := new(MockMailer)
		mailer.On("IsConfigured").Return(true)
		mailer.On("SendPasswordReset", ctx, "john@example.com", mock.AnythingOfType("string")).Return(nil)

		uc := newAuth(repo, new(MockTokens), nil, mailer)
		resetToken, err := uc.ForgotPassword(ctx, "john@example.com")

		require.NoError(t, err)
		assert.NotEmpty(t, resetToken)
		assert.Equal(t, password.DigestResetToken(resetToken), saved.ResetPasswordToken)
		assert.NotEqual(t, resetToken, saved.ResetPasswordToken)
		require.NotNil(t, saved.ResetPasswordExpire)
		assert.WithinDuration(t, time.Now().Add(10*time.Minute), *saved.ResetPasswordExpire, 5*time.Second)
		mailer.AssertCalled(t, "SendPasswordReset", ctx, "john@example.com", resetToken)
	})

	t.Run("Should 404 for unknown email", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("FindAccountByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrNotFound)

		uc := newAuth(repo, new(MockTokens), nil, nil)
		_, err := uc.ForgotPassword(ctx, "ghost@example.com")
		assertAppError(t, err, http.StatusNotFound, "There is no user with that email")
	})

	t.Run("Should clear the token when saving fails", func(t *testing.T) {
		user := newUser(t, "Passw0rd!")
		repo := new(MockAccountRepo)
		repo.On("FindAccountByEmail", ctx, "john@example.com").Return(user, nil)
		repo.On("SaveCredentials", ctx, user.ID.Hex(), mock.MatchedBy(func(c domain.Credentials) bool {
			return c.ResetPasswordToken != ""
		})).Return(errors.New("write failed")).Once()
		repo.On("SaveCredentials", ctx, user.ID.Hex(), mock.MatchedBy(func(c domain.Credentials) bool {
			return c.ResetPasswordToken == "" && c.ResetPasswordExpire == nil
		})).Return(nil).Once()

		uc := newAuth(repo, new(MockTokens), nil, nil)
		_, err := uc.ForgotPassword(ctx, "john@example.com")

		assertAppError(t, err, http.StatusInternalServerError, "Email could not be sent")
		repo.AssertExpectations(t)
		assert.Empty(t, user.ResetPasswordToken)
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject unknown or expired token", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("FindAccountByResetToken", ctx, password.DigestResetToken("stale"), mock.AnythingOfType("time.Time")).
			Return(nil, domain.ErrNotFound)

		uc := newAuth(repo, new(MockTokens), nil, nil)
		_, err := uc.ResetPassword(ctx, "stale", "N3wPassw0rd!")
		assertAppError(t, err, http.StatusBadRequest, "Invalid token!")
	})

	t.Run("Should reject empty token", func(t *testing.T) {
		uc := newAuth(new(MockAccountRepo), new(MockTokens), nil, nil)
		_, err := uc.ResetPassword(ctx, "", "N3wPassw0rd!")
		assertAppError(t, err, http.StatusBadRequest, "Invalid token!")
	})

	t.Run("Should set new password and clear reset fields", func(t *testing.T) {
		user := newUser(t, "Passw0rd!")
		plain, err := user.IssueResetToken(time.Now(), 10*time.Minute)
		require.NoError(t, err)

		repo := new(MockAccountRepo)
		repo.On("FindAccountByResetToken", ctx, password.DigestResetToken(plain), mock.AnythingOfType("time.Time")).Return(user, nil)
		repo.On("SaveCredentials", ctx, user.ID.Hex(), mock.AnythingOfType("domain.Credentials")).Return(nil).Run(func(args mock.Arguments) {
			c := args.Get(2).(domain.Credentials)
			assert.Empty(t, c.ResetPasswordToken)
			assert.Nil(t, c.ResetPasswordExpire)
			assert.True(t, password.Compare(c.Password, "N3wPassw0rd!"))
		})
		tokens := new(MockTokens)
		tokens.On("Issue", user.ID.Hex(), domain.KindUser).Return("signed.jwt", nil)

		uc := newAuth(repo, tokens, nil, nil)
		token, err := uc.ResetPassword(ctx, plain, "N3wPassw0rd!")

		require.NoError(t, err)
		assert.Equal(t, "signed.jwt", token)
		repo.AssertExpectations(t)
	})
}

func TestUpdatePassword(t *testing.T) {
	ctx := context.Background()
	user := newUser(t, "Passw0rd!")
	principal := domain.PrincipalOf(user)

	t.Run("Should reject wrong current password", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("FindAccountByID", ctx, user.ID.Hex()).Return(user, nil)

		uc := newAuth(repo, new(MockTokens), nil, nil)
		_, err := uc.UpdatePassword(ctx, principal, "nope", "N3wPassw0rd!")
		assertAppError(t, err, http.StatusUnauthorized, "Password is incorrect")
	})

	t.Run("Should reject principal of another account kind", func(t *testing.T) {
		uc := newAuth(new(MockAccountRepo), new(MockTokens), nil, nil)
		_, err := uc.UpdatePassword(ctx, domain.Principal{ID: user.ID.Hex(), Kind: domain.KindRecruiter}, "Passw0rd!", "N3wPassw0rd!")
		assertAppError(t, err, http.StatusUnauthorized, "")
	})

	t.Run("Should store new password", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("FindAccountByID", ctx, user.ID.Hex()).Return(user, nil)
		repo.On("SaveCredentials", ctx, user.ID.Hex(), mock.AnythingOfType("domain.Credentials")).Return(nil)
		tokens := new(MockTokens)
		tokens.On("Issue", user.ID.Hex(), domain.KindUser).Return("signed.jwt", nil)

		uc := newAuth(repo, tokens, nil, nil)
		token, err := uc.UpdatePassword(ctx, principal, "Passw0rd!", "N3wPassw0rd!")

		require.NoError(t, err)
		assert.Equal(t, "signed.jwt", token)
		assert.True(t, user.MatchPassword("N3wPassw0rd!"))
	})
}
