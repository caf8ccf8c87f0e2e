package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"eduvid/internal/domain"
)

const systemPrompt = "You are an expert educational content creator specializing in creating engaging video scripts."

// OpenAIOptions configures the ChatGPT-backed script generator.
type OpenAIOptions struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIGenerator produces video scripts through the OpenAI chat completion
// API. It makes exactly one attempt per call and reports every failure as a
// domain.ProviderError.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator constructs a generator from the given options.
func NewOpenAIGenerator(opts OpenAIOptions) (*OpenAIGenerator, error) {
	if opts.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = openai.GPT4
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		MaxTokens:   1000,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(req)},
		},
	})
	if err != nil {
		return nil, domain.NewProviderError("script", ToolChatGPT, err)
	}
	if len(resp.Choices) == 0 {
		return nil, domain.NewProviderError("script", ToolChatGPT, errors.New("empty completion response"))
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return nil, domain.NewProviderError("script", ToolChatGPT, errors.New("completion contained no script text"))
	}

	return &Result{
		Script: text,
		Metadata: Metadata{
			Topic:           req.Topic,
			Category:        string(req.Category),
			Difficulty:      string(req.Difficulty),
			TargetAudience:  req.TargetAudience,
			DurationMinutes: req.DurationMinutes,
			Style:           req.Style,
			GeneratedAt:     time.Now().UTC(),
			Model:           g.model,
			WordCount:       len(strings.Fields(text)),
		},
		ToolsUsed: []string{ToolChatGPT},
	}, nil
}

// buildPrompt asks for an intro/body/outro layout proportional to the
// requested duration. The structure is advisory: the pipeline only requires
// the returned script to be non-empty.
func buildPrompt(req Request) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Create an educational video script about %q for %s.\n\n", req.Topic, req.TargetAudience)
	fmt.Fprintf(sb, "Requirements:\n- Category: %s\n- Difficulty: %s\n- Duration: %d minutes\n- Style: %s\n\n",
		req.Category, req.Difficulty, req.DurationMinutes, req.Style)
	fmt.Fprintf(sb, "The script should be engaging, educational, and suitable for a %d-minute video format. ", req.DurationMinutes)
	sb.WriteString("Include clear explanations, examples, and a logical flow.\n\n")
	body := float64(req.DurationMinutes) - 1
	if body < 1 {
		body = 1
	}
	fmt.Fprintf(sb, "Format the script with:\n1. Introduction (30 seconds)\n2. Main content (%.1f minutes)\n3. Summary and call-to-action (30 seconds)\n", body)
	return sb.String()
}

var _ Generator = (*OpenAIGenerator)(nil)
