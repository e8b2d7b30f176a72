package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/sozercan/platform-compare/internal/config"
)

// OpenAI implements DocumentService with the Files API and file content
// parts in chat completions.
type OpenAI struct {
	client openai.Client
	cfg    *config.LLMConfig
}

func NewOpenAI(cfg *config.LLMConfig) (*OpenAI, error) {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAI{
		client: openai.NewClient(opts...),
		cfg:    cfg,
	}, nil
}

func (o *OpenAI) Model() string {
	return o.cfg.Model
}

func (o *OpenAI) Upload(ctx context.Context, path, displayName string) (*Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	obj, err := o.client.Files.New(ctx, openai.FileNewParams{
		File:    openai.File(f, displayName+".pdf", pdfMIMEType),
		Purpose: openai.FilePurposeUserData,
	})
	if err != nil {
		return nil, classifyOpenAI("upload", err)
	}

	return &Handle{
		ID:       obj.ID,
		URI:      obj.ID,
		MIMEType: pdfMIMEType,
	}, nil
}

func (o *OpenAI) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if req.Handle == nil || req.Handle.ID == "" {
		return "", &Error{Category: CategoryInvalidArgument, Op: "generate", Err: errors.New("missing file reference")}
	}

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemInstruction),
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(req.Prompt),
				openai.FileContentPart(openai.ChatCompletionContentPartFileFileParam{
					FileID: openai.String(req.Handle.ID),
				}),
			}),
		},
	})
	if err != nil {
		return "", classifyOpenAI("generate", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAI) Delete(ctx context.Context, id string) error {
	if _, err := o.client.Files.Delete(ctx, id); err != nil {
		return classifyOpenAI("delete", err)
	}
	return nil
}

func classifyOpenAI(op string, err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return &Error{Category: categorize("", 0, err.Error()), Op: op, Err: err}
	}

	var category Category
	switch apiErr.Code {
	case "invalid_api_key":
		category = CategoryUnauthenticated
	case "model_not_found":
		category = CategoryModelNotFound
	case "insufficient_quota", "rate_limit_exceeded":
		category = CategoryQuotaExhausted
	default:
		category = categorize("", apiErr.StatusCode, apiErr.Message)
	}
	return &Error{Category: category, Op: op, Err: err}
}
