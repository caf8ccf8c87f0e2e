package video

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"eduvid/internal/storage"
)

// PlaceholderComposer reserves video and thumbnail locations under the
// scratch namespace and records that a manual upload is required. No I/O,
// never fails.
type PlaceholderComposer struct{}

// NewPlaceholderComposer constructs the placeholder video stage.
func NewPlaceholderComposer() PlaceholderComposer { return PlaceholderComposer{} }

func (PlaceholderComposer) Compose(_ context.Context, req Request) (*Result, error) {
	token := uuid.NewString()
	style := req.VisualStyle
	if style == "" {
		style = "modern and clean"
	}
	return &Result{
		VideoKey:        storage.ScratchKey(fmt.Sprintf("placeholder_video_%s.mp4", token)),
		ThumbnailKey:    storage.ScratchKey(fmt.Sprintf("placeholder_thumbnail_%s.jpg", token)),
		DurationSeconds: req.DurationSeconds,
		VisualStyle:     style,
		ToolsUsed:       []string{ToolPlaceholder},
		Metadata: map[string]any{
			"script_length": len(req.Script),
			"resolution":    "1920x1080",
			"fps":           30,
			"note":          "Manual video creation required - upload your video using the upload endpoint",
		},
		GeneratedAt: time.Now().UTC(),
	}, nil
}

var _ Composer = PlaceholderComposer{}
