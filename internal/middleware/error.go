package middleware

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	apperrors "stockqr/internal/errors"
	"stockqr/internal/logger"
)

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into consistent JSON error responses. AppErrors are returned with
// their code and message; unexpected errors are logged and return a generic
// internal error to avoid leaking details.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		writeError(c, c.Errors.Last().Err)
	}
}

// Recovery turns a panic into a logged INTERNAL_ERROR response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Get().Errorw("panic recovered",
			"request_id", RequestID(c),
			"panic", fmt.Sprint(recovered),
			"path", c.Request.URL.Path,
		)
		abortWith(c, apperrors.ErrInternalServer)
	})
}

// NotFound renders unknown routes with the standard error envelope.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		abortWith(c, apperrors.WithMessage(apperrors.ErrNotFound, "Route not found"))
	}
}

func writeError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"request_id", RequestID(c),
				"code", appErr.Code,
				"message", appErr.Message,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		abortWith(c, appErr)
		return
	}

	// Unexpected error: log full details, return generic message
	logger.Get().Errorw("unexpected error",
		"request_id", RequestID(c),
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	abortWith(c, apperrors.ErrInternalServer)
}

func abortWith(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
