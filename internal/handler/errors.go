package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gamevault/backend/internal/apperror"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// writeError translates an application error into a JSON response using the
// taxonomy's status mapping. Untyped errors become a 500 without leaking
// their message.
func writeError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.StatusCode(), ErrorResponse{Error: appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}
