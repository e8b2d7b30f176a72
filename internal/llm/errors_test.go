package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestClassifyGemini(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{
			name: "bad key reported as invalid argument",
			err:  genai.APIError{Code: 400, Status: "INVALID_ARGUMENT", Message: "API key not valid. Please pass a valid API key."},
			want: CategoryUnauthenticated,
		},
		{
			name: "unauthenticated status",
			err:  genai.APIError{Code: 401, Status: "UNAUTHENTICATED", Message: "Request had invalid authentication credentials."},
			want: CategoryUnauthenticated,
		},
		{
			name: "permission denied",
			err:  genai.APIError{Code: 403, Status: "PERMISSION_DENIED", Message: "The caller does not have access."},
			want: CategoryPermissionDenied,
		},
		{
			name: "model not found",
			err:  genai.APIError{Code: 404, Status: "NOT_FOUND", Message: "models/gemini-0 is not found for API version v1beta, or model is not supported"},
			want: CategoryModelNotFound,
		},
		{
			name: "missing file is not a missing model",
			err:  genai.APIError{Code: 404, Status: "NOT_FOUND", Message: "File files/abc123 not found."},
			want: CategoryUnknown,
		},
		{
			name: "quota",
			err:  genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "Resource has been exhausted (e.g. check quota)."},
			want: CategoryQuotaExhausted,
		},
		{
			name: "invalid argument",
			err:  genai.APIError{Code: 400, Status: "INVALID_ARGUMENT", Message: "Request contains an invalid argument."},
			want: CategoryInvalidArgument,
		},
		{
			name: "wrapped api error",
			err:  fmt.Errorf("generate: %w", genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}),
			want: CategoryQuotaExhausted,
		},
		{
			name: "file processing message",
			err:  errors.New("error during file processing"),
			want: CategoryDocumentProcessing,
		},
		{
			name: "anything else",
			err:  errors.New("connection reset by peer"),
			want: CategoryUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyGemini("generate", tt.err)
			assert.Equal(t, tt.want, CategoryOf(err))
			assert.Equal(t, tt.err, errors.Unwrap(err))
		})
	}
}

func TestClassifyOpenAI(t *testing.T) {
	tests := []struct {
		name string
		err  *openai.Error
		want Category
	}{
		{name: "invalid key", err: &openai.Error{StatusCode: 401, Code: "invalid_api_key"}, want: CategoryUnauthenticated},
		{name: "forbidden", err: &openai.Error{StatusCode: 403}, want: CategoryPermissionDenied},
		{name: "model not found", err: &openai.Error{StatusCode: 404, Code: "model_not_found"}, want: CategoryModelNotFound},
		{name: "quota", err: &openai.Error{StatusCode: 429, Code: "insufficient_quota"}, want: CategoryQuotaExhausted},
		{name: "bad request", err: &openai.Error{StatusCode: 400, Message: "Invalid file id"}, want: CategoryInvalidArgument},
		{name: "server error", err: &openai.Error{StatusCode: 500}, want: CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryOf(classifyOpenAI("generate", tt.err)))
		})
	}
}

func TestCategoryOfForeignError(t *testing.T) {
	assert.Equal(t, CategoryUnknown, CategoryOf(errors.New("boom")))
	assert.Equal(t, CategoryUnknown, CategoryOf(nil))
}

func TestDetail(t *testing.T) {
	cause := errors.New("quota exceeded for project")
	err := &Error{Category: CategoryQuotaExhausted, Op: "generate", Err: cause}

	assert.Equal(t, "quota exceeded for project", Detail(err))
	assert.Equal(t, "quota exceeded for project", Detail(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, "plain", Detail(errors.New("plain")))
	assert.Equal(t, "generate: quota_exhausted: quota exceeded for project", err.Error())
}
