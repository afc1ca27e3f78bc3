// Package reasoner implements the stage-1 integration: one OpenRouter
// chat-completion call whose reasoning trace and answer are emitted as a
// marker-framed JSON block on stdout.
package reasoner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/exedev/tandem/internal/provider"
)

const (
	// BaseURL is OpenRouter's OpenAI-compatible endpoint.
	BaseURL = "https://openrouter.ai/api/v1"

	// DefaultModel is the reasoning model routed through OpenRouter.
	DefaultModel = "deepseek/deepseek-r1"

	defaultTimeout = 120 * time.Second
)

// Options configure one integration run.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client calls the reasoning model.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

func New(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, errors.New("OPENROUTER_API_KEY is required")
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.BaseURL == "" {
		opts.BaseURL = BaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = opts.BaseURL

	return &Client{
		api:     openai.NewClientWithConfig(cfg),
		model:   opts.Model,
		timeout: opts.Timeout,
	}, nil
}

// Model reports the model slug requests are routed to.
func (c *Client) Model() string { return c.model }

// Reason streams the model response, accumulating the reasoning trace and
// the final answer separately. Reasoning models deliver the trace through
// the reasoning_content delta field ahead of the answer tokens.
func (c *Client) Reason(ctx context.Context, question string) (provider.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stream, err := c.api.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
		Stream: true,
	})
	if err != nil {
		return provider.Result{}, fmt.Errorf("create completion stream: %w", err)
	}
	defer stream.Close()

	var answer, reasoning strings.Builder
	for {
		chunk, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return provider.Result{}, fmt.Errorf("receive stream chunk: %w", err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta
		if delta.ReasoningContent != "" {
			reasoning.WriteString(delta.ReasoningContent)
		}
		if delta.Content != "" {
			answer.WriteString(delta.Content)
		}
	}

	res := provider.Result{
		Answer:    strings.TrimSpace(answer.String()),
		Reasoning: strings.TrimSpace(reasoning.String()),
	}
	if res.Answer == "" {
		return provider.Result{}, errors.New("model returned no answer content")
	}
	if res.Reasoning == "" {
		return provider.Result{}, errors.New("model returned no reasoning content")
	}
	return res, nil
}

// Emit writes the marker-framed JSON payload the invoker parses. The frame
// must match the parser byte for byte.
func Emit(w io.Writer, res provider.Result) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n%s\n", provider.StartMarker, payload, provider.EndMarker); err != nil {
		return fmt.Errorf("write result block: %w", err)
	}
	return nil
}
