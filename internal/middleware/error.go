package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "khata/internal/errors"
	"khata/internal/logger"
)

// ErrorHandler converts the last error attached to the Gin context into the
// JSON error envelope. Causes behind an AppError, and errors that are not
// AppErrors at all, are logged with the request id and never sent to the
// client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr, ok := apperrors.As(err)
		if !ok {
			logger.Get().Errorw("unexpected error",
				"request_id", c.GetString(RequestIDKey),
				"error", err.Error(),
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
			)
			appErr = apperrors.ErrInternalServer
		} else if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"request_id", c.GetString(RequestIDKey),
				"code", appErr.Code,
				"message", appErr.Message,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}

		body := gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		}
		if appErr.Retryable {
			body["retryable"] = true
		}
		c.JSON(appErr.StatusCode, gin.H{"error": body})
	}
}
