package auth

import (
	"errors"
	"time"

	"job-board-backend/internal/domain"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims identify an account by id and collection.
type Claims struct {
	ID   string             `json:"id"`
	Kind domain.AccountKind `json:"kind"`

	jwtlib.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret    []byte
	expiresIn time.Duration

	now func() time.Time
}

func NewTokenService(secret string, expiresIn time.Duration) *TokenService {
	return &TokenService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		now:       time.Now,
	}
}

func (s *TokenService) Issue(id string, kind domain.AccountKind) (string, error) {
	now := s.now().UTC()
	c := Claims{
		ID:   id,
		Kind: kind,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.expiresIn)),
		},
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return t.SignedString(s.secret)
}

func (s *TokenService) Parse(tokenString string) (Claims, error) {
	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
	)

	var c Claims
	_, err := p.ParseWithClaims(tokenString, &c, func(*jwtlib.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if c.ID == "" || c.Kind == "" {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}
