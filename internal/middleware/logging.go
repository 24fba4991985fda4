package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"khata/internal/logger"
)

// RequestIDKey is the context key holding the request id.
const RequestIDKey = "requestID"

const requestIDHeader = "X-Request-ID"

// RequestLogging returns a Gin middleware that logs each request with a
// request id, method, path, status code, latency, client IP and, once
// authenticated, the company. A well-formed X-Request-ID from the caller is
// kept so ids can be followed across services.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)

		c.Next()

		log := logger.Named("http")
		fields := []interface{}{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if companyID := c.GetString(CompanyIDKey); companyID != "" {
			fields = append(fields, "company_id", companyID)
		}

		switch {
		case c.Writer.Status() >= 500:
			log.Errorw("request", fields...)
		case c.Writer.Status() >= 400:
			log.Warnw("request", fields...)
		default:
			log.Infow("request", fields...)
		}
	}
}
