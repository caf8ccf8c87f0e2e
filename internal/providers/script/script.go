package script

import (
	"context"
	"time"

	"eduvid/internal/domain"
)

// Tool identifiers recorded on stage results.
const (
	ToolChatGPT     = "chatgpt"
	ToolPlaceholder = "placeholder"
)

// Request carries the normalized parameters for one script generation.
type Request struct {
	Topic           string
	Category        domain.Category
	Difficulty      domain.Difficulty
	TargetAudience  string
	DurationMinutes int
	Style           string
}

// Metadata describes how a script was produced.
type Metadata struct {
	Topic           string    `json:"topic"`
	Category        string    `json:"category"`
	Difficulty      string    `json:"difficulty"`
	TargetAudience  string    `json:"target_audience"`
	DurationMinutes int       `json:"duration_minutes"`
	Style           string    `json:"style"`
	GeneratedAt     time.Time `json:"generated_at"`
	Model           string    `json:"ai_model"`
	WordCount       int       `json:"word_count,omitempty"`
}

// Result is the output of the script stage.
type Result struct {
	Script    string
	Metadata  Metadata
	ToolsUsed []string
}

// Generator is the contract implemented by script stage providers. A
// generator performs exactly one attempt: retries and fallback policy belong
// to the pipeline, never to the provider.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}
