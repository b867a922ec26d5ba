package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	metricsdomain "github.com/fortuna-labs/fortuna/internal/metrics/domain"
	obsmiddleware "github.com/fortuna-labs/fortuna/internal/observability/logger"
	paymentdomain "github.com/fortuna-labs/fortuna/internal/payment/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrorResponse is the uniform error body for every non-2xx response.
type ErrorResponse struct {
	ErrorID   string `json:"errorId"`
	Message   string `json:"message"`
	Status    int    `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation error"
	}
	parts := make([]string, 0, len(v.Errors))
	for _, fieldErr := range v.Errors {
		parts = append(parts, fieldErr.Message)
	}
	return strings.Join(parts, "; ")
}

// ErrorHandlingMiddleware converts domain errors left on the gin context into
// the uniform error body. Each failure gets a freshly generated errorId so
// operators can correlate a user-visible id with the full log record.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, message := mapError(lastErr.Err)
		errorID := uuid.NewString()

		log := obsmiddleware.FromContext(c.Request.Context())
		fields := []zap.Field{
			zap.String("error_id", errorID),
			zap.Int("status", status),
			zap.Error(lastErr.Err),
		}
		if status >= http.StatusInternalServerError {
			log.Error("request failed", fields...)
		} else {
			log.Warn("request failed", fields...)
		}

		c.AbortWithStatusJSON(status, ErrorResponse{
			ErrorID:   errorID,
			Message:   message,
			Status:    status,
			Timestamp: time.Now().UnixMilli(),
		})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{Field: "request", Code: "invalid_request", Message: "invalid request"},
		},
	}
}

func mapError(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, "an unexpected error occurred"
	}

	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return http.StatusBadRequest, vErr.Error()
	}

	switch {
	case errors.Is(err, metricsdomain.ErrInvalidEvent):
		return http.StatusBadRequest, "event is required"
	case errors.Is(err, metricsdomain.ErrMissingMetadata):
		return http.StatusBadRequest, "eventMetadata is required"
	case errors.Is(err, paymentdomain.ErrInvalidAmount):
		return http.StatusBadRequest, "amount must be at least 50"
	case errors.Is(err, paymentdomain.ErrInvalidIntentID):
		return http.StatusBadRequest, "paymentIntentId is required"
	case errors.Is(err, paymentdomain.ErrPaymentGateway):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, metricsdomain.ErrMetadataSerialization):
		// Fixed message; the marshal cause stays in the log line only.
		return http.StatusInternalServerError, metricsdomain.ErrMetadataSerialization.Error()
	default:
		// The original message stays in the log only.
		return http.StatusInternalServerError, "an unexpected error occurred"
	}
}
