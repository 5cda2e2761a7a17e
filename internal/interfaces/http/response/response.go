package response

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"
	domainerrors "market-hub.backend/internal/domain/errors"
)

// devMode gates the stack trace attached to unexpected 500 responses
var devMode bool

// Init records the server environment
func Init(env string) {
	devMode = env == "development"
}

// Envelope is the JSON shape every endpoint responds with
type Envelope struct {
	Error   bool        `json:"error"`
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{
		Error:   false,
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessWithMeta sends a success response carrying pagination metadata
func SuccessWithMeta(c *gin.Context, status int, message string, data, meta interface{}) {
	c.JSON(status, Envelope{
		Error:   false,
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

// Error sends an error response. AppError values keep their status, code and
// client flags; anything else becomes a 500 carrying the underlying error
// message, plus a stack trace in development.
func Error(c *gin.Context, err error) {
	appErr, expected := err.(*domainerrors.AppError)
	if !expected {
		appErr = domainerrors.InternalError(err)
		appErr.Message = err.Error()
	}

	body := gin.H{
		"error":   true,
		"success": false,
		"message": appErr.Message,
		"code":    appErr.Code,
	}
	if len(appErr.Data) > 0 {
		body["data"] = appErr.Data
	}
	if !expected && devMode {
		body["stack"] = string(debug.Stack())
	}
	c.JSON(appErr.Status, body)
}

// ErrorWithStatus sends an error response with an explicit status and code
func ErrorWithStatus(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error":   true,
		"success": false,
		"message": message,
		"code":    code,
	})
}
