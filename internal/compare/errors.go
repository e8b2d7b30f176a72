package compare

import (
	"errors"
	"net/http"
)

// Error is a request-level failure with the status and message shown to
// the caller.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrMissingCredential = &Error{Status: http.StatusInternalServerError, Message: "Server configuration error: API key missing."}
	ErrEmptyQuery        = &Error{Status: http.StatusBadRequest, Message: "Query parameter is missing or empty."}
	ErrDocumentsMissing  = &Error{Status: http.StatusInternalServerError, Message: "Server configuration error: Party document(s) not found."}
	ErrUploadFailed      = &Error{Status: http.StatusInternalServerError, Message: "Failed to upload one or both party documents to AI service."}
	ErrUnexpected        = &Error{Status: http.StatusInternalServerError, Message: "An unexpected error occurred on the server during processing."}
)

// StatusOf returns the HTTP status for err.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the user-facing message for err. Errors that did not
// come from this package get a generic message.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ErrUnexpected.Message
}
