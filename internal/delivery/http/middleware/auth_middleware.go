package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// TokenCookie is the cookie the session token travels in.
const TokenCookie = "token"

const notAuthorized = "Not authorized to access this route"

// AccountLoader resolves the account a token was issued for.
type AccountLoader interface {
	CurrentAccount(ctx context.Context, id string) (domain.Account, error)
}

// Protect rejects requests without a valid session token and loads the
// caller's account so its role is always fresh.
func Protect(tokens *auth.TokenService, loaders map[domain.AccountKind]AccountLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		// 1. Try to get token from Header
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			tokenString = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		} else if cookie, err := c.Cookie(TokenCookie); err == nil {
			// 2. Fall back to the cookie set at login
			tokenString = cookie
		}

		if tokenString == "" || tokenString == "none" {
			response.Error(c, http.StatusUnauthorized, notAuthorized, nil)
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, notAuthorized, nil)
			c.Abort()
			return
		}

		loader, ok := loaders[claims.Kind]
		if !ok {
			response.Error(c, http.StatusUnauthorized, notAuthorized, nil)
			c.Abort()
			return
		}

		// Fetch the account so a deleted user or a revoked admin flag takes
		// effect immediately.
		acc, err := loader.CurrentAccount(c.Request.Context(), claims.ID)
		if err != nil {
			if staleAccount(err) {
				response.Error(c, http.StatusUnauthorized, notAuthorized, nil)
				c.Abort()
				return
			}
			// Anything else is a store failure; ErrorHandler renders it as a 500.
			c.Error(err)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), acc.AccountID())
		c.Set(string(domain.KeyUserEmail), acc.AccountEmail())
		c.Set(string(domain.KeyUserRole), acc.Role())
		c.Set(string(domain.KeyAccountKind), string(acc.AccountKind()))

		c.Next()
	}
}

// staleAccount reports whether a token points at an account that no longer
// resolves, as opposed to the lookup itself failing.
func staleAccount(err error) bool {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == http.StatusNotFound || appErr.Code == http.StatusBadRequest
}

// AdminValidator only lets admins through. It must run after Protect.
func AdminValidator() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(string(domain.KeyUserRole)) != domain.RoleAdmin {
			response.Error(c, http.StatusForbidden, "Unauthorized to access this resource!!", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// PrincipalFrom reads the caller that Protect stored on the context.
func PrincipalFrom(c *gin.Context) domain.Principal {
	return domain.Principal{
		ID:   c.GetString(string(domain.KeyUserID)),
		Kind: domain.AccountKind(c.GetString(string(domain.KeyAccountKind))),
		Role: c.GetString(string(domain.KeyUserRole)),
	}
}
