package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "stockqr/internal/errors"
	"stockqr/internal/logger"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse represents a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// pathID returns a non-blank path parameter.
func pathID(c *gin.Context, param string) (string, error) {
	id := strings.TrimSpace(c.Param(param))
	if id == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// requireConfirmation rejects destructive requests lacking confirm=true.
func requireConfirmation(c *gin.Context) error {
	if c.Query("confirm") != "true" {
		return apperrors.ErrConfirmationRequired
	}
	return nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{
			Error: ErrorDetail{Code: appErr.Code, Message: appErr.Message},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    apperrors.ErrInternalServer.Code,
			Message: apperrors.ErrInternalServer.Message,
		},
	})
}

func invalidInput(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}
