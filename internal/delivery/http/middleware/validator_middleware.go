package middleware

import (
	"errors"
	"io"
	"net/http"

	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom tags on gin's validator engine.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}
}

// UserValidator requires every user field on create.
func UserValidator() gin.HandlerFunc {
	return requirePayload[domain.CreateUserRequest]()
}

// RecruiterValidator requires companyName, companyDescription, address, email
// and password on create.
func RecruiterValidator() gin.HandlerFunc {
	return requirePayload[domain.CreateRecruiterRequest]()
}

// JobValidator requires jobTitle, jobDescription, location and salary.
func JobValidator() gin.HandlerFunc {
	return requirePayload[domain.CreateJobRequest]()
}

// Payload returns the body bound by one of the validators above.
func Payload[T any](c *gin.Context) (*T, bool) {
	v, ok := c.Get(string(domain.KeyPayload))
	if !ok {
		return nil, false
	}
	p, ok := v.(*T)
	return p, ok
}

func requirePayload[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := new(T)
		if err := c.ShouldBindJSON(req); err != nil {
			switch {
			case errors.Is(err, io.EOF):
				response.Error(c, http.StatusBadRequest, "Missing Required fields!", nil)
			case validation.HasMissingRequired(err):
				response.Error(c, http.StatusBadRequest, "Missing Required fields!", validation.FormatValidationErrors(err))
			default:
				var verrs validator.ValidationErrors
				if errors.As(err, &verrs) {
					response.Error(c, http.StatusBadRequest, "Validation failed", validation.FormatValidationErrors(err))
				} else {
					response.Error(c, http.StatusBadRequest, "Invalid request body", nil)
				}
			}
			c.Abort()
			return
		}

		c.Set(string(domain.KeyPayload), req)
		c.Next()
	}
}
