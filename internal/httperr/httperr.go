package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

// Issue is one field-level validation failure.
type Issue struct {
	Code    string   `json:"code"`
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

type ConflictBody struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Conflicts any    `json:"conflicts"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unavailable(c *gin.Context, code, message string) {
	Write(c, http.StatusServiceUnavailable, code, message)
}

func Validation(c *gin.Context, issues []Issue) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": issues})
}

func Conflict(c *gin.Context, message string, conflicts any) {
	c.JSON(http.StatusConflict, ConflictBody{
		Error:     "scheduling_conflict",
		Message:   message,
		Conflicts: conflicts,
	})
}

func NotFound(c *gin.Context, message string) {
	c.String(http.StatusNotFound, message)
}

func Forbidden(c *gin.Context, message string) {
	c.String(http.StatusForbidden, message)
}

func Unauthorized(c *gin.Context, message string) {
	c.String(http.StatusUnauthorized, message)
}

func TooManyRequests(c *gin.Context, code, message string) {
	Write(c, http.StatusTooManyRequests, code, message)
}
