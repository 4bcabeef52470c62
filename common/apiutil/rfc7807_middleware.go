package apiutil

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aidin1998/apihub/common/errors"
)

// ErrorMiddleware renders the last error attached to the context as RFC 7807
// problem details. Handlers report failures with c.Error and return.
func ErrorMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		problemDetails := ToProblemDetails(err, c.Request.URL.Path)
		if problemDetails.Status >= 500 {
			logger.Error("request failed",
				zap.String("path", c.Request.URL.Path),
				zap.Int("status", problemDetails.Status),
				zap.Error(err))
		}
		RFC7807ErrorResponse(c, problemDetails)
		c.Abort()
	}
}

// ToProblemDetails maps any error to problem details. Unknown errors become
// internal errors without leaking their text.
func ToProblemDetails(err error, instance string) *errors.ProblemDetails {
	var problemDetails *errors.ProblemDetails
	if errors.As(err, &problemDetails) {
		return problemDetails
	}

	var kindErr *errors.Error
	if errors.As(err, &kindErr) {
		return kindErr.ToProblemDetails(instance)
	}

	return errors.NewInternalError("An unexpected error occurred", instance)
}

// GetTraceID extracts trace ID from context
func GetTraceID(c *gin.Context) string {
	if traceID, exists := c.Get(TraceIDKey); exists {
		if id, ok := traceID.(string); ok {
			return id
		}
	}
	return c.GetHeader(TraceIDHeader)
}

// RFC7807ErrorResponse writes an RFC 7807 compliant error response
func RFC7807ErrorResponse(c *gin.Context, problemDetails *errors.ProblemDetails) {
	if traceID := GetTraceID(c); traceID != "" {
		problemDetails.WithTraceID(traceID)
	}

	c.Header("Content-Type", "application/problem+json")
	c.JSON(problemDetails.Status, problemDetails)
}

// RateLimitReached is the limiter callback used when a client exceeds its quota.
func RateLimitReached(c *gin.Context) {
	RFC7807ErrorResponse(c, errors.NewRateLimitError("Too many requests, slow down", c.Request.URL.Path))
	c.Abort()
}

// LimiterError is the limiter callback used when the limiter store fails.
func LimiterError(c *gin.Context, err error) {
	RFC7807ErrorResponse(c, errors.NewInternalError("Rate limiter failure", c.Request.URL.Path))
	c.Abort()
}
