package script

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const placeholderTemplate = `Welcome to this %s-friendly %s tutorial! Today we're learning about %s.

In this %d-minute video, I'll show you the fundamentals in a %s way that's perfect for %s.

Let's start with the basics and work our way up to something you can actually use in your projects.

[Script content would be generated here based on the topic]

That's it for today! Don't forget to practice what you've learned.`

// Placeholder renders a fixed script template from the request parameters.
// It performs no I/O and never fails; it is the availability floor for the
// script stage.
type Placeholder struct{}

// NewPlaceholder constructs the fallback script generator.
func NewPlaceholder() Placeholder { return Placeholder{} }

func (Placeholder) Generate(_ context.Context, req Request) (*Result, error) {
	text := fmt.Sprintf(placeholderTemplate,
		req.Difficulty, req.Category, req.Topic,
		req.DurationMinutes, req.Style, req.TargetAudience)

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
			Model:           ToolPlaceholder,
			WordCount:       len(strings.Fields(text)),
		},
		ToolsUsed: []string{ToolPlaceholder},
	}, nil
}

var _ Generator = Placeholder{}
