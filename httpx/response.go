// Package httpx holds the JSON envelope shared by handlers and middleware.
package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/yamdb-api/services"
)

// Success writes {"status":"success","data":...}
func Success(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"status": "success",
		"data":   data,
	})
}

// NoContent answers a successful deletion
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error writes {"status":"error","message":...} with optional field errors
func Error(c *gin.Context, status int, message string, fields map[string][]string) {
	body := gin.H{
		"status":  "error",
		"message": message,
	}
	if len(fields) > 0 {
		body["errors"] = fields
	}
	c.AbortWithStatusJSON(status, body)
}

// BindError answers a request body or query that failed to bind
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			field := lowerFirst(fe.Field())
			fields[field] = append(fields[field], bindMessage(fe))
		}
		Error(c, http.StatusBadRequest, "Invalid request", fields)
		return
	}
	Error(c, http.StatusBadRequest, "Invalid request body", map[string][]string{"body": {err.Error()}})
}

// HandleServiceError maps service errors onto HTTP statuses
func HandleServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		Error(c, http.StatusBadRequest, "Invalid request", verr.Fields)
	case errors.Is(err, services.ErrInvalidCredentials):
		Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, services.ErrUnauthenticated):
		Error(c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, services.ErrPermissionDenied):
		Error(c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, services.ErrNotFound):
		Error(c, http.StatusNotFound, capitalize(err.Error()), nil)
	case errors.Is(err, services.ErrMethodNotAllowed):
		Error(c, http.StatusMethodNotAllowed, err.Error(), nil)
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("Unhandled internal server error")
		Error(c, http.StatusInternalServerError, "An unexpected error occurred", nil)
	}
}

func bindMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return "Ensure this field has no more than " + fe.Param() + " characters."
	case "oneof":
		return "Must be one of: " + fe.Param() + "."
	}
	return "Invalid value."
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
