package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"eduvid/internal/domain"
	"eduvid/internal/infra"
	"eduvid/internal/providers"
	"eduvid/internal/providers/narration"
	"eduvid/internal/providers/script"
	"eduvid/internal/providers/video"
)

const defaultProviderTimeout = 60 * time.Second

// ArtifactRepository is the narrow persistence surface the pipeline depends
// on. The full repository lives in adapter/repo; tests substitute fakes.
type ArtifactRepository interface {
	Create(ctx context.Context, artifact *domain.ContentArtifact) error
	UpdateGeneration(ctx context.Context, artifact *domain.ContentArtifact) error
	MarkFailed(ctx context.Context, artifactID, reason string) error
}

// Options wires a Generator. Script and Narration may be nil when the
// matching stage is unavailable; the placeholders must always be set.
type Options struct {
	Availability providers.Availability

	Script            script.Generator
	ScriptFallback    script.Generator
	Narration         narration.Synthesizer
	NarrationFallback narration.Synthesizer
	Video             video.Composer

	Repo            ArtifactRepository
	Logger          infra.Logger
	ProviderTimeout time.Duration
	BatchPacing     time.Duration
}

// Generator drives a generation request through the script, narration, and
// video stages in order, assembles the resulting artifact, and persists it.
// Provider failures at any stage degrade to placeholder output; the only
// failures surfaced to callers are validation and persistence.
type Generator struct {
	avail             providers.Availability
	script            script.Generator
	scriptFallback    script.Generator
	narration         narration.Synthesizer
	narrationFallback narration.Synthesizer
	video             video.Composer
	repo              ArtifactRepository
	logger            infra.Logger
	timeout           time.Duration
	pacing            time.Duration
}

// NewGenerator constructs the pipeline orchestrator.
func NewGenerator(opts Options) *Generator {
	g := &Generator{
		avail:             opts.Availability,
		script:            opts.Script,
		scriptFallback:    opts.ScriptFallback,
		narration:         opts.Narration,
		narrationFallback: opts.NarrationFallback,
		video:             opts.Video,
		repo:              opts.Repo,
		logger:            opts.Logger,
		timeout:           opts.ProviderTimeout,
		pacing:            opts.BatchPacing,
	}
	if g.scriptFallback == nil {
		g.scriptFallback = script.NewPlaceholder()
	}
	if g.narrationFallback == nil {
		g.narrationFallback = narration.NewPlaceholder()
	}
	if g.video == nil {
		g.video = video.NewPlaceholderComposer()
	}
	if g.timeout <= 0 {
		g.timeout = defaultProviderTimeout
	}
	if g.pacing <= 0 {
		g.pacing = time.Second
	}
	return g
}

// GenerateScript produces a script for the request. After validation it
// cannot fail: an unavailable or failing provider degrades to the placeholder
// template, and the fallback marker replaces the provider's in ToolsUsed.
func (g *Generator) GenerateScript(ctx context.Context, req domain.GenerationRequest) (*script.Result, error) {
	req = req.Defaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	in := script.Request{
		Topic:           req.Topic,
		Category:        req.Category,
		Difficulty:      req.Difficulty,
		TargetAudience:  req.TargetAudience,
		DurationMinutes: req.DurationMinutes,
		Style:           req.Style,
	}

	if g.script == nil || !g.avail.IsAvailable(providers.StageScript) {
		return g.scriptFallback.Generate(ctx, in)
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	res, err := g.script.Generate(callCtx, in)
	if err != nil {
		g.logger.Error().Err(err).Str("stage", string(providers.StageScript)).
			Str("topic", req.Topic).Msg("provider failed, falling back to placeholder")
		return g.scriptFallback.Generate(ctx, in)
	}
	return res, nil
}

// CreateArtifactParams are the inputs of CreateArtifact. ScriptTools carries
// the tool identifiers of the script stage when the caller already ran it.
type CreateArtifactParams struct {
	Script        string
	Title         string
	Category      domain.Category
	Difficulty    domain.Difficulty
	CreatorID     string
	VoiceSettings map[string]any
	VisualStyle   string
	Prompt        string
	ScriptTools   []string
}

// CreateArtifact runs the narration and video stages over an existing script,
// assembles the content artifact, and persists it. The record is created as
// `generating` and only flipped to `completed` once every stage result is in
// place; persistence failures are the single unmasked failure path.
func (g *Generator) CreateArtifact(ctx context.Context, p CreateArtifactParams) (*domain.ContentArtifact, error) {
	if strings.TrimSpace(p.Script) == "" {
		return nil, &domain.ValidationError{Field: "script", Reason: "must not be empty"}
	}
	if strings.TrimSpace(p.Title) == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if p.CreatorID == "" {
		return nil, &domain.ValidationError{Field: "creator_id", Reason: "must not be empty"}
	}
	if !p.Category.Valid() {
		return nil, &domain.ValidationError{Field: "category", Reason: "unknown category " + string(p.Category)}
	}
	if !p.Difficulty.Valid() {
		return nil, &domain.ValidationError{Field: "difficulty", Reason: "unknown difficulty " + string(p.Difficulty)}
	}
	if p.VisualStyle == "" {
		p.VisualStyle = domain.DefaultVisualStyle
	}
	if p.VoiceSettings == nil {
		p.VoiceSettings = domain.DefaultVoiceSettings()
	}

	narrStart := time.Now()
	narr := g.runNarration(ctx, narration.Request{Script: p.Script, VoiceSettings: p.VoiceSettings})
	narrElapsed := time.Since(narrStart)

	duration := int(narr.DurationSeconds)
	if duration <= 0 {
		duration = narration.PlaceholderDurationSeconds
	}

	vidStart := time.Now()
	vid, _ := g.video.Compose(ctx, video.Request{
		Script:          p.Script,
		VisualStyle:     p.VisualStyle,
		DurationSeconds: duration,
	})
	vidElapsed := time.Since(vidStart)

	tools := make([]string, 0, len(p.ScriptTools)+len(narr.ToolsUsed)+len(vid.ToolsUsed))
	tools = append(tools, p.ScriptTools...)
	tools = append(tools, narr.ToolsUsed...)
	tools = append(tools, vid.ToolsUsed...)

	now := time.Now().UTC()
	artifact := &domain.ContentArtifact{
		ID:            uuid.NewString(),
		Title:         p.Title,
		Description:   fmt.Sprintf("AI-generated educational content about %s", p.Title),
		Script:        p.Script,
		AudioURL:      narr.AudioKey,
		VideoURL:      vid.VideoKey,
		ThumbnailURL:  vid.ThumbnailKey,
		Duration:      duration,
		Category:      p.Category,
		Difficulty:    p.Difficulty,
		Tags:          fmt.Sprintf("%s,%s,ai-generated", p.Category, p.Difficulty),
		ContentSource: domain.ContentSourceAIGenerated,
		Status:        domain.GenerationStatusGenerating,
		Prompt:        p.Prompt,
		ToolsUsed:     tools,
		Metadata: map[string]any{
			"script_length":      len(p.Script),
			"narration_ms":       narrElapsed.Milliseconds(),
			"video_ms":           vidElapsed.Milliseconds(),
			"video_note":         vid.Metadata["note"],
			"generation_time":    now.Format(time.RFC3339),
			"narration_duration": narr.DurationSeconds,
		},
		VoiceSettings:  narr.VoiceSettings,
		VisualStyle:    vid.VisualStyle,
		TargetAudience: domain.DefaultTargetAudience,
		CreatorID:      p.CreatorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := g.repo.Create(ctx, artifact); err != nil {
		return nil, &domain.PersistenceError{Op: "create artifact", Err: err}
	}

	artifact.Status = domain.GenerationStatusCompleted
	artifact.UpdatedAt = time.Now().UTC()
	if err := g.repo.UpdateGeneration(ctx, artifact); err != nil {
		if markErr := g.repo.MarkFailed(ctx, artifact.ID, err.Error()); markErr != nil {
			g.logger.Error().Err(markErr).Str("artifact_id", artifact.ID).
				Msg("could not mark artifact failed after update error")
		}
		return nil, &domain.PersistenceError{Op: "complete artifact", Err: err}
	}

	g.logger.Info().Str("artifact_id", artifact.ID).Str("title", artifact.Title).
		Strs("tools", tools).Msg("artifact generated")
	return artifact, nil
}

// runNarration applies the availability-then-fallback policy for the
// narration stage. It cannot fail: the placeholder is the floor.
func (g *Generator) runNarration(ctx context.Context, req narration.Request) *narration.Result {
	if g.narration == nil || !g.avail.IsAvailable(providers.StageNarration) {
		res, _ := g.narrationFallback.Synthesize(ctx, req)
		return res
	}
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	res, err := g.narration.Synthesize(callCtx, req)
	if err != nil {
		g.logger.Error().Err(err).Str("stage", string(providers.StageNarration)).
			Msg("provider failed, falling back to placeholder")
		res, _ = g.narrationFallback.Synthesize(ctx, req)
		return res
	}
	return res
}
