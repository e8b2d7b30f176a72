package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingCredential is returned by New when a real provider has no API key.
var ErrMissingCredential = errors.New("llm api key is not configured")

type Category int

const (
	CategoryUnknown Category = iota
	CategoryUnauthenticated
	CategoryPermissionDenied
	CategoryModelNotFound
	CategoryQuotaExhausted
	CategoryInvalidArgument
	CategoryDocumentProcessing
)

func (c Category) String() string {
	switch c {
	case CategoryUnauthenticated:
		return "unauthenticated"
	case CategoryPermissionDenied:
		return "permission_denied"
	case CategoryModelNotFound:
		return "model_not_found"
	case CategoryQuotaExhausted:
		return "quota_exhausted"
	case CategoryInvalidArgument:
		return "invalid_argument"
	case CategoryDocumentProcessing:
		return "document_processing"
	default:
		return "unknown"
	}
}

// Error is a provider failure tagged with its category.
type Error struct {
	Category Category
	Op       string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Category, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CategoryOf returns the category of err, or CategoryUnknown when err was
// not produced by a DocumentService.
func CategoryOf(err error) Category {
	var e *Error
	if errors.As(err, &e) {
		return e.Category
	}
	return CategoryUnknown
}

// Detail returns the provider's own description of err.
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Err != nil {
		return e.Err.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// categorize maps an RPC status, an HTTP status code and a message onto a
// Category. Message checks come first because some providers report a bad
// key as INVALID_ARGUMENT.
func categorize(status string, code int, message string) Category {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "api key not valid"), strings.Contains(msg, "incorrect api key"),
		status == "UNAUTHENTICATED", code == 401:
		return CategoryUnauthenticated
	case strings.Contains(msg, "permission"), status == "PERMISSION_DENIED", code == 403:
		return CategoryPermissionDenied
	case strings.Contains(msg, "model") && strings.Contains(msg, "not found"):
		return CategoryModelNotFound
	case status == "RESOURCE_EXHAUSTED", code == 429:
		return CategoryQuotaExhausted
	case status == "INVALID_ARGUMENT", code == 400:
		return CategoryInvalidArgument
	case strings.Contains(msg, "file processing"):
		return CategoryDocumentProcessing
	default:
		return CategoryUnknown
	}
}
