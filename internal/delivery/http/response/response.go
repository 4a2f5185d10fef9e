package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key the RequestID middleware stores the
// request id under.
const RequestIDKey = "RequestID"

// Response is the envelope every endpoint answers with.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// RequestID returns the id set by the RequestID middleware, or "" outside it.
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

func write(c *gin.Context, code int, res Response) {
	res.RequestID = RequestID(c)
	c.JSON(code, res)
}

func Success(c *gin.Context, code int, message string, data interface{}) {
	write(c, code, Response{Success: true, Message: message, Data: data})
}

// Created answers 201 for a newly stored resource.
func Created(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusCreated, message, data)
}

// Error sends a failure envelope; err carries field details and may be nil.
func Error(c *gin.Context, code int, message string, err interface{}) {
	write(c, code, Response{Message: message, Error: err})
}
