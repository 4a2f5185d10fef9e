package domain

import (
	"context"
	"time"

	"job-board-backend/pkg/password"
)

type AccountKind string

const (
	KindUser      AccountKind = "user"
	KindRecruiter AccountKind = "recruiter"
)

const (
	RoleAdmin     = "admin"
	RoleUser      = "user"
	RoleRecruiter = "recruiter"
)

// Credentials are the secret fields shared by every account collection.
// None of them are ever rendered to JSON.
type Credentials struct {
	Password            string     `bson:"password,omitempty" json:"-"`
	ResetPasswordToken  string     `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpire *time.Time `bson:"resetPasswordExpire,omitempty" json:"-"`
}

func (c *Credentials) SetPassword(plain string) error {
	hash, err := password.Hash(plain)
	if err != nil {
		return err
	}
	c.Password = hash
	return nil
}

func (c *Credentials) MatchPassword(plain string) bool {
	return password.Compare(c.Password, plain)
}

// IssueResetToken stores the digest of a fresh reset token and returns the
// plaintext, which is only ever handed back to the caller.
func (c *Credentials) IssueResetToken(now time.Time, ttl time.Duration) (string, error) {
	plain, digest, err := password.NewResetToken()
	if err != nil {
		return "", err
	}
	expire := now.Add(ttl)
	c.ResetPasswordToken = digest
	c.ResetPasswordExpire = &expire
	return plain, nil
}

func (c *Credentials) ClearResetToken() {
	c.ResetPasswordToken = ""
	c.ResetPasswordExpire = nil
}

// Account is implemented by every document that can log in.
type Account interface {
	AccountID() string
	AccountEmail() string
	AccountKind() AccountKind
	Role() string
	Creds() *Credentials
}

// Principal is the authenticated caller of a request.
type Principal struct {
	ID   string
	Kind AccountKind
	Role string
}

func PrincipalOf(a Account) Principal {
	return Principal{ID: a.AccountID(), Kind: a.AccountKind(), Role: a.Role()}
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanModify reports whether p may change the account or document owned by ownerID.
func (p Principal) CanModify(ownerID string) bool {
	return p.IsAdmin() || (p.ID != "" && p.ID == ownerID)
}

// AccountRepository is the credential side of an account collection. Every
// read here includes the secret fields.
type AccountRepository interface {
	FindAccountByEmail(ctx context.Context, email string) (Account, error)
	FindAccountByID(ctx context.Context, id string) (Account, error)
	FindAccountByResetToken(ctx context.Context, tokenDigest string, now time.Time) (Account, error)
	SaveCredentials(ctx context.Context, id string, creds Credentials) error
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(id string, kind AccountKind) (string, error)
}

// LoginGuard throttles repeated failed logins for one email.
type LoginGuard interface {
	IsBlocked(ctx context.Context, email string) (bool, error)
	RecordFailedAttempt(ctx context.Context, email, ip, userAgent, requestID string) (bool, error)
	ClearAttempts(ctx context.Context, email string) error
}

// ResetMailer delivers password reset tokens out of band.
type ResetMailer interface {
	IsConfigured() bool
	SendPasswordReset(ctx context.Context, to, token string) error
}

type LoginRequest struct {
	Email     string
	Password  string
	IP        string
	UserAgent string
	RequestID string
}

type AuthUsecase interface {
	Login(ctx context.Context, req LoginRequest) (string, error)
	// ForgotPassword returns the plaintext reset token.
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) (string, error)
	UpdatePassword(ctx context.Context, p Principal, current, next string) (string, error)
	CurrentAccount(ctx context.Context, id string) (Account, error)
}
