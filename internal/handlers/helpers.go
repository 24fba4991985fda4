package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "khata/internal/errors"
	"khata/internal/logger"
	"khata/internal/middleware"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// getCompanyID extracts the tenant the token is scoped to.
func getCompanyID(c *gin.Context) (string, error) {
	companyID := c.GetString(middleware.CompanyIDKey)
	if companyID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return companyID, nil
}

// scope returns the company and user of the request.
func scope(c *gin.Context) (companyID, userID string, err error) {
	if companyID, err = getCompanyID(c); err != nil {
		return "", "", err
	}
	if userID, err = getUserID(c); err != nil {
		return "", "", err
	}
	return companyID, userID, nil
}

// parseDate accepts RFC3339 timestamps and plain YYYY-MM-DD dates.
func parseDate(field, s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput,
		"invalid "+field+" format, use RFC3339 or YYYY-MM-DD")
}

// optionalDate parses s when it is set and returns the zero time otherwise.
func optionalDate(field string, s *string) (time.Time, error) {
	if s == nil || *s == "" {
		return time.Time{}, nil
	}
	return parseDate(field, *s)
}

func bindError(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Get().Errorw("unexpected error",
			"request_id", c.GetString(middleware.RequestIDKey),
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		appErr = apperrors.ErrInternalServer
	} else if appErr.Internal != nil {
		logger.Get().Errorw("app error",
			"request_id", c.GetString(middleware.RequestIDKey),
			"code", appErr.Code,
			"internal", appErr.Internal.Error(),
			"path", c.Request.URL.Path,
		)
	}

	c.JSON(appErr.StatusCode, ErrorResponse{Error: ErrorDetail{
		Code:      appErr.Code,
		Message:   appErr.Message,
		Retryable: appErr.Retryable,
	}})
}
