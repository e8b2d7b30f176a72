package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/sozercan/platform-compare/internal/config"
)

// Gemini implements DocumentService on top of the Gemini File API.
type Gemini struct {
	client *genai.Client
	cfg    *config.LLMConfig
}

func NewGemini(ctx context.Context, cfg *config.LLMConfig) (*Gemini, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		cfg:    cfg,
	}, nil
}

func (g *Gemini) Model() string {
	return g.cfg.Model
}

func (g *Gemini) Upload(ctx context.Context, path, displayName string) (*Handle, error) {
	slog.Debug("Uploading document", "path", path, "displayName", displayName)

	file, err := g.client.Files.UploadFromPath(ctx, path, &genai.UploadFileConfig{
		MIMEType:    pdfMIMEType,
		DisplayName: displayName,
	})
	if err != nil {
		return nil, classifyGemini("upload", err)
	}

	active, err := g.waitActive(ctx, file)
	if err != nil {
		// the caller never sees this file, so it is removed here
		if derr := g.Delete(context.WithoutCancel(ctx), file.Name); derr != nil {
			slog.Error("Failed to delete unusable upload", "file", file.Name, "error", derr)
		}
		return nil, err
	}

	mime := active.MIMEType
	if mime == "" {
		mime = pdfMIMEType
	}
	return &Handle{
		ID:       active.Name,
		URI:      active.URI,
		MIMEType: mime,
	}, nil
}

// waitActive polls a freshly uploaded file until the service has finished
// processing it.
func (g *Gemini) waitActive(ctx context.Context, file *genai.File) (*genai.File, error) {
	if file.State == genai.FileStateProcessing {
		ctx, cancel := context.WithTimeout(ctx, g.cfg.ProcessingTimeout)
		defer cancel()

		ticker := time.NewTicker(g.cfg.PollInterval)
		defer ticker.Stop()

		for file.State == genai.FileStateProcessing {
			select {
			case <-ctx.Done():
				return nil, &Error{
					Category: CategoryDocumentProcessing,
					Op:       "upload",
					Err:      fmt.Errorf("file processing did not finish for %s: %w", file.Name, ctx.Err()),
				}
			case <-ticker.C:
			}

			next, err := g.client.Files.Get(ctx, file.Name, nil)
			if err != nil {
				return nil, classifyGemini("upload", err)
			}
			file = next
		}
	}

	if file.State == genai.FileStateFailed {
		return nil, &Error{
			Category: CategoryDocumentProcessing,
			Op:       "upload",
			Err:      fmt.Errorf("file processing failed for %s", file.Name),
		}
	}
	return file, nil
}

func (g *Gemini) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if req.Handle == nil || req.Handle.URI == "" {
		return "", &Error{Category: CategoryInvalidArgument, Op: "generate", Err: errors.New("missing file reference")}
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(req.Prompt),
			genai.NewPartFromURI(req.Handle.URI, req.Handle.MIMEType),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
	})
	if err != nil {
		return "", classifyGemini("generate", err)
	}
	return resp.Text(), nil
}

func (g *Gemini) Delete(ctx context.Context, id string) error {
	if _, err := g.client.Files.Delete(ctx, id, nil); err != nil {
		return classifyGemini("delete", err)
	}
	return nil
}

func classifyGemini(op string, err error) error {
	var category Category
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		category = categorize(apiErr.Status, apiErr.Code, apiErr.Message)
	} else {
		category = categorize("", 0, err.Error())
	}

	return &Error{Category: category, Op: op, Err: err}
}
