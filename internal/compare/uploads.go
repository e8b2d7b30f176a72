package compare

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc"
	"go.uber.org/multierr"

	"github.com/sozercan/platform-compare/internal/llm"
)

// upload guards one remote document for the lifetime of a request.
type upload struct {
	party  Party
	handle *llm.Handle
	once   sync.Once
}

func (u *upload) release(ctx context.Context, docs llm.DocumentService) error {
	if u.handle == nil {
		return nil
	}
	var err error
	u.once.Do(func() {
		slog.Debug("Deleting uploaded document", "party", u.party.Name, "file", u.handle.ID)
		err = docs.Delete(ctx, u.handle.ID)
	})
	return err
}

// uploadSet owns the uploads made for a single request. release must be
// deferred as soon as the set exists so that every created handle is
// deleted on every exit path.
type uploadSet struct {
	docs    llm.DocumentService
	timeout time.Duration
	uploads []*upload
}

func newUploadSet(docs llm.DocumentService, timeout time.Duration, parties ...Party) *uploadSet {
	set := &uploadSet{docs: docs, timeout: timeout}
	for _, p := range parties {
		set.uploads = append(set.uploads, &upload{party: p})
	}
	return set
}

// acquire uploads every party document concurrently. A failed upload leaves
// its handle nil and does not affect the others.
func (s *uploadSet) acquire(ctx context.Context) {
	var wg conc.WaitGroup
	for _, u := range s.uploads {
		wg.Go(func() {
			h, err := s.docs.Upload(ctx, u.party.Document, displayName(u.party))
			if err != nil {
				slog.Error("Failed to upload party document", "party", u.party.Name, "path", u.party.Document, "error", err)
				return
			}
			u.handle = h
		})
	}
	wg.Wait()
}

func (s *uploadSet) complete() bool {
	for _, u := range s.uploads {
		if u.handle == nil {
			return false
		}
	}
	return true
}

func (s *uploadSet) handle(key string) *llm.Handle {
	for _, u := range s.uploads {
		if u.party.Key == key {
			return u.handle
		}
	}
	return nil
}

// release deletes every created handle. It runs on a context detached from
// the request so a cancelled request still cleans up. Failures are logged.
func (s *uploadSet) release(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	var errs error
	for _, u := range s.uploads {
		if u.handle == nil {
			slog.Debug("Skipping delete, document was not uploaded", "party", u.party.Name)
			continue
		}
		if err := u.release(ctx, s.docs); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("delete %s: %w", u.handle.ID, err))
			continue
		}
		slog.Info("Deleted uploaded document", "party", u.party.Name, "file", u.handle.ID)
	}

	if errs != nil {
		slog.Error("Cleanup of uploaded documents failed", "failures", len(multierr.Errors(errs)), "error", errs)
	}
}

func displayName(p Party) string {
	return p.Key + "-" + uuid.NewString()
}
