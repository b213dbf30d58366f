package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/trademarket-api/pkg/apperror"
)

// JSON sends data as a bare JSON body
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// OK sends a 200 response with data as the body
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

// Empty sends a 200 response without a body
func Empty(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Error maps err to its status code and writes the message as plain text
func Error(c *gin.Context, err error) {
	appErr := apperror.GetAppError(err)
	if appErr.Code >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.String(appErr.Code, appErr.Message)
}

// ErrorWithCode sends a plain text error with a specific status code
func ErrorWithCode(c *gin.Context, statusCode int, message string) {
	c.String(statusCode, message)
}

// NotFound sends a 404 Not Found response
func NotFound(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusNotFound, message)
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusBadRequest, message)
}

// TooManyRequests sends a 429 response
func TooManyRequests(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusTooManyRequests, message)
}
