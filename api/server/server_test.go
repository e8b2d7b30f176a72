package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sozercan/platform-compare/apimodels"
	"github.com/sozercan/platform-compare/internal/compare"
	"github.com/sozercan/platform-compare/internal/config"
)

type fakeComparer struct {
	ready   error
	result  *apimodels.CompareResponse
	err     error
	panics  bool
	queries []string
}

func (f *fakeComparer) Ready() error { return f.ready }

func (f *fakeComparer) Compare(_ context.Context, query string) (*apimodels.CompareResponse, error) {
	f.queries = append(f.queries, query)
	if f.panics {
		panic("boom")
	}
	return f.result, f.err
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var out map[string]string
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestHandleCompareSuccess(t *testing.T) {
	fake := &fakeComparer{result: &apimodels.CompareResponse{
		Conservative: "The Conservative Party's platform for 2025 includes...",
		Liberal:      "The Liberal Party's platform for 2025 includes...",
	}}
	s := New(config.ServerConfig{}, fake, nil)

	rec, out := do(t, s, http.MethodPost, "/api/compare", `{"query":"healthcare funding"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "The Conservative Party's platform for 2025 includes...", out["conservative"])
	assert.Equal(t, "The Liberal Party's platform for 2025 includes...", out["liberal"])
	assert.Equal(t, []string{"healthcare funding"}, fake.queries)
}

func TestHandleCompareMalformedBody(t *testing.T) {
	for _, body := range []string{"", "not json", `{"query": 42}`} {
		fake := &fakeComparer{}
		s := New(config.ServerConfig{}, fake, nil)

		rec, out := do(t, s, http.MethodPost, "/api/compare", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, invalidBodyMessage, out["error"])
		assert.Empty(t, fake.queries)
	}
}

func TestHandleCompareServiceErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{compare.ErrEmptyQuery, http.StatusBadRequest},
		{compare.ErrDocumentsMissing, http.StatusInternalServerError},
		{compare.ErrUploadFailed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		s := New(config.ServerConfig{}, &fakeComparer{err: tt.err}, nil)

		rec, out := do(t, s, http.MethodPost, "/api/compare", `{"query":"x"}`)
		assert.Equal(t, tt.status, rec.Code)
		assert.Equal(t, tt.err.Error(), out["error"])
	}
}

func TestHandleCompareMissingCredential(t *testing.T) {
	fake := &fakeComparer{ready: compare.ErrMissingCredential}
	s := New(config.ServerConfig{}, fake, nil)

	rec, out := do(t, s, http.MethodPost, "/api/compare", "not json")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server configuration error: API key missing.", out["error"])
	assert.Empty(t, fake.queries)
}

func TestHandleComparePanic(t *testing.T) {
	s := New(config.ServerConfig{}, &fakeComparer{panics: true}, nil)

	rec, out := do(t, s, http.MethodPost, "/api/compare", `{"query":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, compare.ErrUnexpected.Message, out["error"])
}

func TestHandleStatusAndHealth(t *testing.T) {
	s := New(config.ServerConfig{}, &fakeComparer{}, nil)

	rec, out := do(t, s, http.MethodGet, "/api/compare", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, statusMessage, out["message"])

	rec, out = do(t, s, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", out["status"])
}

func TestPageRoute(t *testing.T) {
	page := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("form " + r.Method))
	})
	s := New(config.ServerConfig{}, &fakeComparer{}, page)

	rec, _ := do(t, s, http.MethodGet, "/", "")
	assert.Equal(t, "form GET", rec.Body.String())

	rec, _ = do(t, s, http.MethodPost, "/", "")
	assert.Equal(t, "form POST", rec.Body.String())
}
