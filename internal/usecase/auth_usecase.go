package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/password"

	"go.uber.org/zap"
)

// AuthConfig selects the account collection an auth usecase serves.
type AuthConfig struct {
	Kind     domain.AccountKind
	ResetTTL time.Duration
}

type authUsecase struct {
	kind     domain.AccountKind
	resetTTL time.Duration
	accounts domain.AccountRepository
	tokens   domain.TokenIssuer
	guard    domain.LoginGuard
	mailer   domain.ResetMailer
	logger   *zap.Logger

	now func() time.Time
}

// NewAuthUsecase wires the login and password flows for one account kind.
// guard and mailer are optional.
func NewAuthUsecase(
	cfg AuthConfig,
	accounts domain.AccountRepository,
	tokens domain.TokenIssuer,
	guard domain.LoginGuard,
	mailer domain.ResetMailer,
	logger *zap.Logger,
) domain.AuthUsecase {
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = 10 * time.Minute
	}
	return &authUsecase{
		kind:     cfg.Kind,
		resetTTL: cfg.ResetTTL,
		accounts: accounts,
		tokens:   tokens,
		guard:    guard,
		mailer:   mailer,
		logger:   logger.With(zap.String("account_kind", string(cfg.Kind))),
		now:      time.Now,
	}
}

func (u *authUsecase) Login(ctx context.Context, req domain.LoginRequest) (string, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return "", apperror.BadRequest("Please input your email and password")
	}

	if u.guard != nil {
		blocked, err := u.guard.IsBlocked(ctx, email)
		if err != nil {
			u.logger.Warn("login guard unavailable", zap.Error(err))
		}
		if blocked {
			return "", apperror.TooManyRequests("Too many failed login attempts. Please try again later.")
		}
	}

	acc, err := u.accounts.FindAccountByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		u.recordFailure(ctx, email, req)
		return "", apperror.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return "", fmt.Errorf("error logging in: %w", err)
	}

	if !acc.Creds().MatchPassword(req.Password) {
		u.recordFailure(ctx, email, req)
		return "", apperror.Unauthorized("Credentials do not match!")
	}

	if u.guard != nil {
		if err := u.guard.ClearAttempts(ctx, email); err != nil {
			u.logger.Warn("failed to clear login attempts", zap.Error(err))
		}
	}

	return u.tokens.Issue(acc.AccountID(), u.kind)
}

func (u *authUsecase) recordFailure(ctx context.Context, email string, req domain.LoginRequest) {
	if u.guard == nil {
		return
	}
	if _, err := u.guard.RecordFailedAttempt(ctx, email, req.IP, req.UserAgent, req.RequestID); err != nil {
		u.logger.Warn("failed to record login attempt", zap.Error(err))
	}
}

func (u *authUsecase) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", apperror.BadRequest("Please provide an email")
	}

	acc, err := u.accounts.FindAccountByEmail(ctx, email)
	if err != nil {
		return "", storeError(err, "error requesting password reset", "There is no user with that email")
	}

	creds := acc.Creds()
	resetToken, err := creds.IssueResetToken(u.now(), u.resetTTL)
	if err != nil {
		return "", err
	}

	if err := u.accounts.SaveCredentials(ctx, acc.AccountID(), *creds); err != nil {
		creds.ClearResetToken()
		if clearErr := u.accounts.SaveCredentials(ctx, acc.AccountID(), *creds); clearErr != nil {
			u.logger.Error("failed to clear reset token", zap.Error(clearErr))
		}
		return "", apperror.New(http.StatusInternalServerError, "Email could not be sent", err)
	}

	if u.mailer != nil && u.mailer.IsConfigured() {
		if err := u.mailer.SendPasswordReset(ctx, acc.AccountEmail(), resetToken); err != nil {
			u.logger.Warn("failed to mail reset token", zap.Error(err))
		}
	}

	return resetToken, nil
}

func (u *authUsecase) ResetPassword(ctx context.Context, resetToken, newPassword string) (string, error) {
	if resetToken == "" {
		return "", apperror.BadRequest("Invalid token!")
	}

	acc, err := u.accounts.FindAccountByResetToken(ctx, password.DigestResetToken(resetToken), u.now())
	if errors.Is(err, domain.ErrNotFound) {
		return "", apperror.BadRequest("Invalid token!")
	}
	if err != nil {
		return "", fmt.Errorf("error resetting password: %w", err)
	}

	creds := acc.Creds()
	if err := creds.SetPassword(newPassword); err != nil {
		return "", err
	}
	creds.ClearResetToken()

	if err := u.accounts.SaveCredentials(ctx, acc.AccountID(), *creds); err != nil {
		return "", fmt.Errorf("error resetting password: %w", err)
	}

	return u.tokens.Issue(acc.AccountID(), u.kind)
}

func (u *authUsecase) UpdatePassword(ctx context.Context, p domain.Principal, current, next string) (string, error) {
	if p.Kind != u.kind {
		return "", apperror.Unauthorized("Not authorized to access this route")
	}

	acc, err := u.accounts.FindAccountByID(ctx, p.ID)
	if err != nil {
		return "", storeError(err, "error updating password", "Account not found")
	}

	creds := acc.Creds()
	if !creds.MatchPassword(current) {
		return "", apperror.Unauthorized("Password is incorrect")
	}
	if err := creds.SetPassword(next); err != nil {
		return "", err
	}

	if err := u.accounts.SaveCredentials(ctx, acc.AccountID(), *creds); err != nil {
		return "", fmt.Errorf("error updating password: %w", err)
	}

	return u.tokens.Issue(acc.AccountID(), u.kind)
}

func (u *authUsecase) CurrentAccount(ctx context.Context, id string) (domain.Account, error) {
	acc, err := u.accounts.FindAccountByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "error loading account", "Account not found")
	}
	return acc, nil
}
