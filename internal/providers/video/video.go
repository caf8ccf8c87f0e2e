package video

import (
	"context"
	"time"
)

// ToolPlaceholder is the only tool identifier this stage can record: no real
// video-synthesis provider exists under the current scope.
const ToolPlaceholder = "placeholder"

// Request carries the input of the video stage.
type Request struct {
	Script          string
	VisualStyle     string
	DurationSeconds int
}

// Result is the output of the video stage. The video and thumbnail keys are
// reservations: the actual media arrives through a later manual upload.
type Result struct {
	VideoKey        string
	ThumbnailKey    string
	DurationSeconds int
	VisualStyle     string
	ToolsUsed       []string
	Metadata        map[string]any
	GeneratedAt     time.Time
}

// Composer is the contract of the video stage. Kept as an interface so a real
// synthesis provider can be slotted in once one exists that handles clips
// longer than a few seconds.
type Composer interface {
	Compose(ctx context.Context, req Request) (*Result, error)
}
