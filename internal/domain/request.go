package domain

import "strings"

const (
	DefaultTargetAudience  = "beginners"
	DefaultDurationMinutes = 3
	DefaultStyle           = "engaging and educational"
	DefaultVisualStyle     = "modern and clean"
)

// GenerationRequest carries the parameters of one script generation. It is a
// value object: normalize once with Defaults, validate with Validate, then
// hand it to the pipeline unchanged.
type GenerationRequest struct {
	Topic           string
	Category        Category
	Difficulty      Difficulty
	TargetAudience  string
	DurationMinutes int
	Style           string
}

// Defaults returns a copy with the optional text fields filled in.
// DurationMinutes is deliberately left alone: a zero must stay visible to
// Validate, so transports resolve an absent duration to
// DefaultDurationMinutes before constructing the request.
func (r GenerationRequest) Defaults() GenerationRequest {
	if strings.TrimSpace(r.TargetAudience) == "" {
		r.TargetAudience = DefaultTargetAudience
	}
	if strings.TrimSpace(r.Style) == "" {
		r.Style = DefaultStyle
	}
	return r
}

// Validate rejects malformed requests before any stage runs.
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return &ValidationError{Field: "topic", Reason: "must not be empty"}
	}
	if !r.Category.Valid() {
		return &ValidationError{Field: "category", Reason: "unknown category " + string(r.Category)}
	}
	if !r.Difficulty.Valid() {
		return &ValidationError{Field: "difficulty", Reason: "unknown difficulty " + string(r.Difficulty)}
	}
	if r.DurationMinutes <= 0 {
		return &ValidationError{Field: "duration_minutes", Reason: "must be positive"}
	}
	return nil
}

// DefaultVoiceSettings is the voice configuration used when the caller does
// not supply one.
func DefaultVoiceSettings() map[string]any {
	return map[string]any{
		"speed":    1.0,
		"tone":     "professional",
		"language": "en",
	}
}
