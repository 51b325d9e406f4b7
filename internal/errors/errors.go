package errors

import (
	"encoding/json"
	"net/http"

	"datacheck/internal/infrastructure"
)

// Problem is an RFC 7807 problem document. It doubles as an error value so
// handlers can pass it through error returns before rendering.
type Problem struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Status  int    `json:"status"`
	Detail  string `json:"detail,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// Error implements the error interface.
func (p *Problem) Error() string {
	return p.Title + ": " + p.Detail
}

// New creates a problem document. typeSlug becomes the /errors/<slug> type
// URI.
func New(status int, typeSlug, title, detail string) *Problem {
	return &Problem{
		Type:   "/errors/" + typeSlug,
		Title:  title,
		Status: status,
		Detail: detail,
	}
}

// Common problem constructors.

func InvalidRequest(detail string) *Problem {
	return New(http.StatusBadRequest, "invalid-request", "Invalid Request", detail)
}

func InvalidThreshold(detail string) *Problem {
	return New(http.StatusBadRequest, "invalid-threshold", "Invalid Threshold", detail)
}

func MissingFile(detail string) *Problem {
	return New(http.StatusBadRequest, "missing-file", "Missing File", detail)
}

func UnsupportedFormat(detail string) *Problem {
	return New(http.StatusUnsupportedMediaType, "unsupported-format", "Unsupported Format", detail)
}

func UnreadableFile(detail string) *Problem {
	return New(http.StatusUnprocessableEntity, "unreadable-file", "Unreadable File", detail)
}

func RateLimitExceeded() *Problem {
	return New(http.StatusTooManyRequests, "rate-limit-exceeded", "Too Many Requests",
		"Rate limit exceeded. Please retry after 60 seconds")
}

func InternalServer(detail string) *Problem {
	return New(http.StatusInternalServerError, "internal-server-error", "Internal Server Error", detail)
}

// Render writes the problem document as application/problem+json, attaching
// the request's trace id when one is present.
func (p *Problem) Render(w http.ResponseWriter, r *http.Request) {
	doc := *p
	if doc.TraceID == "" {
		doc.TraceID = infrastructure.GetTraceID(r.Context())
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(doc.Status)
	_ = json.NewEncoder(w).Encode(&doc)
}
