package narration

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"eduvid/internal/storage"
)

// Placeholder reserves a synthetic audio location under the scratch namespace
// with a fixed nominal duration and a generic voice configuration. No I/O,
// never fails. Keys are uuid-qualified so two runs finishing in the same
// instant cannot collide.
type Placeholder struct{}

// NewPlaceholder constructs the fallback narration synthesizer.
func NewPlaceholder() Placeholder { return Placeholder{} }

func (Placeholder) Synthesize(_ context.Context, req Request) (*Result, error) {
	key := storage.ScratchKey(fmt.Sprintf("placeholder_audio_%s.mp3", uuid.NewString()))
	return &Result{
		AudioKey:        key,
		DurationSeconds: PlaceholderDurationSeconds,
		VoiceSettings: map[string]any{
			"voice": ToolPlaceholder,
			"model": ToolPlaceholder,
		},
		ToolsUsed:   []string{ToolPlaceholder},
		GeneratedAt: time.Now().UTC(),
		Model:       ToolPlaceholder,
	}, nil
}

var _ Synthesizer = Placeholder{}
