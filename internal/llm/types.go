package llm

import (
	"context"
)

const pdfMIMEType = "application/pdf"

// Handle identifies a document previously uploaded to the document service.
type Handle struct {
	ID       string
	URI      string
	MIMEType string
}

type GenerateRequest struct {
	// Handle of the uploaded document the answer must be grounded in
	Handle *Handle

	// Prompt is the user's question
	Prompt string

	// SystemInstruction constrains how the model answers
	SystemInstruction string
}

// DocumentService is the contract the comparison flow needs from a
// generative-AI provider: upload a file, generate against it, delete it.
// Implementations return *Error so callers never inspect provider errors.
type DocumentService interface {
	Upload(ctx context.Context, path, displayName string) (*Handle, error)
	Generate(ctx context.Context, req GenerateRequest) (string, error)
	Delete(ctx context.Context, id string) error
	Model() string
}
