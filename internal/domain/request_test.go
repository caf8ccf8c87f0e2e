package domain

import (
	"errors"
	"testing"
)

func TestGenerationRequestDefaults(t *testing.T) {
	req := GenerationRequest{Topic: "Go", Category: CategoryProgramming, Difficulty: DifficultyBeginner}
	got := req.Defaults()

	if got.TargetAudience != DefaultTargetAudience {
		t.Errorf("TargetAudience = %q, want %q", got.TargetAudience, DefaultTargetAudience)
	}
	if got.Style != DefaultStyle {
		t.Errorf("Style = %q, want %q", got.Style, DefaultStyle)
	}
	// A zero duration must survive Defaults so Validate can reject it.
	if got.DurationMinutes != 0 {
		t.Errorf("DurationMinutes = %d, want 0 left for Validate", got.DurationMinutes)
	}
	// Explicit values survive.
	req.TargetAudience = "experts"
	req.DurationMinutes = 10
	if got := req.Defaults(); got.TargetAudience != "experts" || got.DurationMinutes != 10 {
		t.Errorf("Defaults overwrote explicit values: %+v", got)
	}
}

func TestGenerationRequestValidate(t *testing.T) {
	valid := GenerationRequest{
		Topic:           "Docker",
		Category:        CategoryProgramming,
		Difficulty:      DifficultyBeginner,
		DurationMinutes: 3,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*GenerationRequest)
		field  string
	}{
		{"empty topic", func(r *GenerationRequest) { r.Topic = "  " }, "topic"},
		{"unknown category", func(r *GenerationRequest) { r.Category = "cooking" }, "category"},
		{"unknown difficulty", func(r *GenerationRequest) { r.Difficulty = "impossible" }, "difficulty"},
		{"zero duration", func(r *GenerationRequest) { r.DurationMinutes = 0 }, "duration_minutes"},
		{"negative duration", func(r *GenerationRequest) { r.DurationMinutes = -1 }, "duration_minutes"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			err := req.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("field = %q, want %q", verr.Field, tc.field)
			}
		})
	}
}
