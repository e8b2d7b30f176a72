package client

import (
	"context"
	"strings"
)

const (
	ConservativePlaceholder = "The Conservative perspective will appear here..."
	LiberalPlaceholder      = "The Liberal perspective will appear here..."
	LoadingPlaceholder      = "Loading perspective..."
	NoInformation           = "No specific information found or an error occurred."
	ErrorPlaceholder        = "Error loading perspective."

	EmptyQueryMessage = "Please enter a topic or question."
	FallbackMessage   = "Failed to fetch perspectives. Check browser console and server logs."
)

type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateResult
	StateError
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateResult:
		return "result"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// Form holds what the comparison form shows. It is not safe for concurrent
// use; a second Submit while one is in flight is not cancelled.
type Form struct {
	Query        string
	Conservative string
	Liberal      string
	Loading      bool
	Error        string

	// OnChange, if set, is called after every visible state change.
	OnChange func(f *Form)

	submitted bool
}

func NewForm() *Form {
	return &Form{
		Conservative: ConservativePlaceholder,
		Liberal:      LiberalPlaceholder,
	}
}

func (f *Form) State() State {
	switch {
	case f.Loading:
		return StateSubmitting
	case f.Error != "":
		return StateError
	case f.submitted:
		return StateResult
	default:
		return StateIdle
	}
}

// Submit sends the current query to backend and updates the form with the
// outcome. The returned error is also reflected in f.Error.
func (f *Form) Submit(ctx context.Context, backend Backend) error {
	if strings.TrimSpace(f.Query) == "" {
		f.Error = EmptyQueryMessage
		f.changed()
		return &StatusError{Message: EmptyQueryMessage}
	}

	f.Loading = true
	f.Error = ""
	f.Conservative = LoadingPlaceholder
	f.Liberal = LoadingPlaceholder
	f.changed()

	defer func() {
		f.Loading = false
		f.submitted = true
		f.changed()
	}()

	resp, err := backend.Compare(ctx, f.Query)
	if err != nil {
		f.Error = err.Error()
		if f.Error == "" {
			f.Error = FallbackMessage
		}
		f.Conservative = ErrorPlaceholder
		f.Liberal = ErrorPlaceholder
		return err
	}

	f.Conservative = NoInformation
	f.Liberal = NoInformation
	if resp != nil {
		if resp.Conservative != "" {
			f.Conservative = resp.Conservative
		}
		if resp.Liberal != "" {
			f.Liberal = resp.Liberal
		}
	}
	return nil
}

func (f *Form) changed() {
	if f.OnChange != nil {
		f.OnChange(f)
	}
}
