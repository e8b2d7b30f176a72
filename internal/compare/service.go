package compare

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/sozercan/platform-compare/apimodels"
	"github.com/sozercan/platform-compare/internal/config"
	"github.com/sozercan/platform-compare/internal/llm"
)

const defaultCleanupTimeout = 15 * time.Second

type Option func(*Service)

// WithCleanupTimeout bounds the time spent deleting uploads after a request.
func WithCleanupTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.cleanupTimeout = d
		}
	}
}

type Service struct {
	docs           llm.DocumentService
	conservative   Party
	liberal        Party
	cleanupTimeout time.Duration
}

// New returns a Service. A nil docs means no credential was configured;
// every request then fails with ErrMissingCredential.
func New(docs llm.DocumentService, documents config.DocumentsConfig, opts ...Option) *Service {
	s := &Service{
		docs:           docs,
		conservative:   Conservative(documents.Conservative),
		liberal:        Liberal(documents.Liberal),
		cleanupTimeout: defaultCleanupTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ready reports whether the service can reach the document service at all.
func (s *Service) Ready() error {
	if s.docs == nil {
		return ErrMissingCredential
	}
	return nil
}

// Compare answers query once per party from that party's document.
func (s *Service) Compare(ctx context.Context, query string) (*apimodels.CompareResponse, error) {
	if err := s.Ready(); err != nil {
		slog.Error("Document service is not configured, API key missing")
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if err := s.checkDocuments(); err != nil {
		return nil, err
	}

	slog.Info("Starting comparison", "query", truncate(query, 30))

	uploads := newUploadSet(s.docs, s.cleanupTimeout, s.conservative, s.liberal)
	defer uploads.release(ctx)

	uploads.acquire(ctx)
	if !uploads.complete() {
		slog.Error("One or both file uploads failed")
		return nil, ErrUploadFailed
	}

	var conservative, liberal string
	var wg conc.WaitGroup
	wg.Go(func() {
		conservative = s.perspective(ctx, s.conservative, uploads.handle(s.conservative.Key), query)
	})
	wg.Go(func() {
		liberal = s.perspective(ctx, s.liberal, uploads.handle(s.liberal.Key), query)
	})
	wg.Wait()

	slog.Info("Comparison completed",
		"conservative", truncate(conservative, 50),
		"liberal", truncate(liberal, 50),
	)

	return &apimodels.CompareResponse{
		Conservative: conservative,
		Liberal:      liberal,
	}, nil
}

func (s *Service) checkDocuments() error {
	for _, p := range []Party{s.conservative, s.liberal} {
		if _, err := os.Stat(p.Document); err != nil {
			slog.Error("Party document not available", "party", p.Name, "path", p.Document, "error", err)
			return ErrDocumentsMissing
		}
	}
	return nil
}

// perspective never fails: a generation error becomes the party's text.
func (s *Service) perspective(ctx context.Context, p Party, h *llm.Handle, query string) string {
	slog.Info("Requesting summary", "party", p.Name, "query", truncate(query, 30), "file", h.ID)

	text, err := s.docs.Generate(ctx, llm.GenerateRequest{
		Handle:            h,
		Prompt:            query,
		SystemInstruction: systemInstruction(p),
	})
	if err != nil {
		slog.Error("Failed to generate perspective",
			"party", p.Name,
			"category", llm.CategoryOf(err).String(),
			"error", err,
		)
		return failureText(p, s.docs.Model(), err)
	}

	if text == "" {
		return emptyText(p)
	}

	slog.Debug("Generated perspective", "party", p.Name, "preview", truncate(text, 100))
	return text
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n]) + "..."
	}
	return s
}
