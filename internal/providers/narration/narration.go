package narration

import (
	"context"
	"time"
)

// Tool identifiers recorded on stage results.
const (
	ToolElevenLabs  = "elevenlabs"
	ToolPlaceholder = "placeholder"
)

// PlaceholderDurationSeconds is the nominal length reported for placeholder
// narration, matching the default three-minute target.
const PlaceholderDurationSeconds = 180

// Request carries the input of the narration stage.
type Request struct {
	Script        string
	VoiceSettings map[string]any
}

// Result is the output of the narration stage: where the audio lives and how
// it was produced.
type Result struct {
	AudioKey        string
	DurationSeconds float64
	VoiceSettings   map[string]any
	ToolsUsed       []string
	GeneratedAt     time.Time
	Model           string
}

// Synthesizer is the contract implemented by narration stage providers. One
// attempt per call; fallback policy lives in the pipeline.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) (*Result, error)
}
