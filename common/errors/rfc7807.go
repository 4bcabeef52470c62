package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ProblemDetails is the application/problem+json body (RFC 7807) every
// failed request renders.
type ProblemDetails struct {
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Status    int               `json:"status"`
	Detail    string            `json:"detail"`
	Instance  string            `json:"instance,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	TraceID   string            `json:"traceId,omitempty"`
	Errors    []ValidationError `json:"errors,omitempty"`
}

// ValidationError names one rejected request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

const problemBase = "https://apihub.dev/errors/"

const (
	TypeValidationError = problemBase + "validation-error"
	TypeNotFound        = problemBase + "not-found"
	TypeRateLimit       = problemBase + "rate-limit"
	TypeUnavailable     = problemBase + "unavailable"
	TypeTimeout         = problemBase + "upstream-timeout"
	TypeInternalError   = problemBase + "internal-error"
)

type problemKind struct {
	typ   string
	title string
}

var problemKinds = map[int]problemKind{
	http.StatusBadRequest:          {TypeValidationError, "Validation Error"},
	http.StatusNotFound:            {TypeNotFound, "Not Found"},
	http.StatusTooManyRequests:     {TypeRateLimit, "Rate Limit Exceeded"},
	http.StatusServiceUnavailable:  {TypeUnavailable, "Service Unavailable"},
	http.StatusGatewayTimeout:      {TypeTimeout, "Upstream Timeout"},
	http.StatusInternalServerError: {TypeInternalError, "Internal Server Error"},
}

// Problem builds problem details for status. Statuses without a registered
// kind are reported as internal errors.
func Problem(status int, detail, instance string) *ProblemDetails {
	kind, ok := problemKinds[status]
	if !ok {
		status = http.StatusInternalServerError
		kind = problemKinds[status]
	}
	if detail == "" {
		detail = http.StatusText(status)
	}
	return &ProblemDetails{
		Type:      kind.typ,
		Title:     kind.title,
		Status:    status,
		Detail:    detail,
		Instance:  instance,
		Timestamp: time.Now().UTC(),
	}
}

func NewRateLimitError(detail, instance string) *ProblemDetails {
	return Problem(http.StatusTooManyRequests, detail, instance)
}

func NewInternalError(detail, instance string) *ProblemDetails {
	return Problem(http.StatusInternalServerError, detail, instance)
}

func (p *ProblemDetails) WithTraceID(traceID string) *ProblemDetails {
	p.TraceID = traceID
	return p
}

func (p *ProblemDetails) Error() string {
	return fmt.Sprintf("[%d] %s: %s", p.Status, p.Title, p.Detail)
}

// ToProblemDetails renders a kind error, carrying its field errors along.
func (e *Error) ToProblemDetails(instance string) *ProblemDetails {
	pd := Problem(e.StatusCode(), e.Message, instance)
	for _, f := range e.Fields {
		pd.Errors = append(pd.Errors, ValidationError{Field: f.Field, Message: f.Message, Code: f.Kind})
	}
	return pd
}
