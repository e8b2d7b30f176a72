package compare

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sozercan/platform-compare/internal/llm"
)

func TestFailureText(t *testing.T) {
	p := Liberal("l.pdf")
	tagged := func(c llm.Category, msg string) error {
		return &llm.Error{Category: c, Op: "generate", Err: errors.New(msg)}
	}

	tests := []struct {
		err  error
		want string
	}{
		{tagged(llm.CategoryUnauthenticated, "bad key"), "Error: Invalid Google API Key."},
		{tagged(llm.CategoryPermissionDenied, "denied"), "Error: Permission denied for model 'gemini-x' or File API."},
		{tagged(llm.CategoryModelNotFound, "404"), "Error: Model 'gemini-x' not found or not available."},
		{tagged(llm.CategoryQuotaExhausted, "429"), "Error: API Quota exceeded."},
		{tagged(llm.CategoryInvalidArgument, "bad uri"), "Error: Invalid argument provided to the AI model for Liberal Party. Check logs for details. (Might be related to the file or prompt)."},
		{tagged(llm.CategoryDocumentProcessing, "file processing failed"), "Error: The AI model encountered an issue processing the Liberal Party document. Details: file processing failed"},
		{tagged(llm.CategoryUnknown, "EOF"), "An error occurred while getting the Liberal Party perspective via File API. Details: EOF"},
		{errors.New("raw"), "An error occurred while getting the Liberal Party perspective via File API. Details: raw"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, failureText(p, "gemini-x", tt.err))
	}
}

func TestStatusAndMessageOf(t *testing.T) {
	assert.Equal(t, 400, StatusOf(ErrEmptyQuery))
	assert.Equal(t, 500, StatusOf(errors.New("boom")))
	assert.Equal(t, ErrUnexpected.Message, MessageOf(errors.New("boom")))
	assert.Equal(t, ErrUploadFailed.Message, MessageOf(ErrUploadFailed))
}
