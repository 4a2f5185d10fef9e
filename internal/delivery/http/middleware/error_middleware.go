package middleware

import (
	"errors"
	"net/http"

	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Code >= http.StatusInternalServerError && appErr.Err != nil {
					logger.Error("request failed",
						zap.String("request_id", response.RequestID(c)),
						zap.String("path", c.FullPath()),
						zap.Error(appErr.Err),
					)
				}
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				// Never expose internal error details to clients.
				logger.Error("internal server error",
					zap.String("request_id", response.RequestID(c)),
					zap.String("path", c.FullPath()),
					zap.Error(err),
				)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
