package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Mock is an offline DocumentService for local development. It never
// contacts a provider and answers with a canned summary.
type Mock struct {
	model string

	mu    sync.Mutex
	seq   int
	files map[string]string
}

func NewMock(model string) *Mock {
	return &Mock{model: model, files: make(map[string]string)}
}

func (m *Mock) Model() string {
	return m.model
}

func (m *Mock) Upload(_ context.Context, path, displayName string) (*Handle, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &Error{Category: CategoryInvalidArgument, Op: "upload", Err: err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	id := fmt.Sprintf("files/mock-%d", m.seq)
	m.files[id] = displayName

	return &Handle{
		ID:       id,
		URI:      "mock://" + id,
		MIMEType: pdfMIMEType,
	}, nil
}

func (m *Mock) Generate(_ context.Context, req GenerateRequest) (string, error) {
	if req.Handle == nil {
		return "", &Error{Category: CategoryInvalidArgument, Op: "generate", Err: fmt.Errorf("missing file reference")}
	}

	m.mu.Lock()
	_, ok := m.files[req.Handle.ID]
	m.mu.Unlock()
	if !ok {
		return "", &Error{Category: CategoryInvalidArgument, Op: "generate", Err: fmt.Errorf("unknown file %s", req.Handle.ID)}
	}

	var sb strings.Builder
	sb.WriteString(leadSentence(req.SystemInstruction))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "- Offline summary for %q\n", req.Prompt)
	fmt.Fprintf(&sb, "- Source document: %s\n", req.Handle.ID)
	return sb.String(), nil
}

func (m *Mock) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[id]; !ok {
		return &Error{Category: CategoryUnknown, Op: "delete", Err: fmt.Errorf("file %s not found", id)}
	}
	delete(m.files, id)
	return nil
}

// Files reports how many uploads are still held.
func (m *Mock) Files() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

// leadSentence extracts the quoted sentence the instruction asks the answer
// to start with.
func leadSentence(instruction string) string {
	start := strings.Index(instruction, `"`)
	if start < 0 {
		return "Summary:"
	}
	end := strings.Index(instruction[start+1:], `"`)
	if end < 0 {
		return "Summary:"
	}
	return instruction[start+1 : start+1+end]
}
