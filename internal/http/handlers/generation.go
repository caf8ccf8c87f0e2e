package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"eduvid/internal/domain"
	"eduvid/internal/pipeline"
)

type generateScriptRequest struct {
	Topic          string `json:"topic"`
	Category       string `json:"category"`
	Difficulty     string `json:"difficulty"`
	TargetAudience string `json:"target_audience"`
	// Pointer so an absent field and an explicit 0 stay distinguishable:
	// absent gets the default, 0 is rejected downstream.
	DurationMinutes *int   `json:"duration_minutes"`
	Style           string `json:"style"`
}

// GenerateScript produces a script for a single topic. The response is
// always a complete script: provider failures degrade to the placeholder
// template inside the pipeline.
func (a *App) GenerateScript(w http.ResponseWriter, r *http.Request) {
	if a.currentUserID(r) == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req generateScriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	duration := domain.DefaultDurationMinutes
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}
	result, err := a.Pipeline.GenerateScript(r.Context(), domain.GenerationRequest{
		Topic:           req.Topic,
		Category:        domain.Category(req.Category),
		Difficulty:      domain.Difficulty(req.Difficulty),
		TargetAudience:  req.TargetAudience,
		DurationMinutes: duration,
		Style:           req.Style,
	})
	if err != nil {
		a.writeDomainError(w, err)
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"success":       true,
		"script":        result.Script,
		"metadata":      result.Metadata,
		"ai_tools_used": result.ToolsUsed,
	})
}

type createArtifactRequest struct {
	Script        string         `json:"script"`
	Title         string         `json:"title"`
	Category      string         `json:"category"`
	Difficulty    string         `json:"difficulty"`
	VoiceSettings map[string]any `json:"voice_settings"`
	VisualStyle   string         `json:"visual_style"`
	ScriptTools   []string       `json:"ai_tools_used"`
}

// CreateArtifact runs the narration and video stages over a script and
// persists the resulting artifact.
func (a *App) CreateArtifact(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req createArtifactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	creator, err := a.Creators.GetOrCreateByUserID(r.Context(), userID, "")
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to resolve creator")
		return
	}

	artifact, err := a.Pipeline.CreateArtifact(r.Context(), pipeline.CreateArtifactParams{
		Script:        req.Script,
		Title:         req.Title,
		Category:      domain.Category(req.Category),
		Difficulty:    domain.Difficulty(req.Difficulty),
		CreatorID:     creator.ID,
		VoiceSettings: req.VoiceSettings,
		VisualStyle:   req.VisualStyle,
		Prompt:        fmt.Sprintf("Create an educational video about %s", req.Title),
		ScriptTools:   req.ScriptTools,
	})
	if err != nil {
		a.writeDomainError(w, err)
		return
	}

	a.json(w, http.StatusCreated, artifactResponse(artifact))
}

type generateBatchRequest struct {
	Topics     []string `json:"topics"`
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty"`
}

// GenerateBatch accepts a list of topics and kicks off batch generation in
// the background. The response only acknowledges dispatch; per-topic
// outcomes materialize as stored artifacts.
func (a *App) GenerateBatch(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req generateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if len(req.Topics) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "topics must not be empty")
		return
	}
	category := domain.Category(req.Category)
	difficulty := domain.Difficulty(req.Difficulty)
	if !category.Valid() {
		a.error(w, http.StatusBadRequest, "bad_request", "unknown category")
		return
	}
	if !difficulty.Valid() {
		a.error(w, http.StatusBadRequest, "bad_request", "unknown difficulty")
		return
	}

	creator, err := a.Creators.GetOrCreateByUserID(r.Context(), userID, "")
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to resolve creator")
		return
	}

	// The batch outlives this request: detach from the request context so
	// the client disconnecting does not cancel generation.
	batchCtx := context.WithoutCancel(r.Context())
	go func() {
		outcomes := a.Pipeline.GenerateBatch(batchCtx, req.Topics, category, difficulty, creator.ID)
		succeeded := len(pipeline.Artifacts(outcomes))
		a.Logger.Info().Int("requested", len(req.Topics)).Int("succeeded", succeeded).
			Str("creator_id", creator.ID).Msg("batch generation finished")
	}()

	a.json(w, http.StatusAccepted, map[string]any{
		"success":    true,
		"message":    fmt.Sprintf("Started generating %d videos in background", len(req.Topics)),
		"topics":     req.Topics,
		"category":   category,
		"difficulty": difficulty,
	})
}

// writeDomainError maps pipeline error kinds to HTTP responses.
func (a *App) writeDomainError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		a.error(w, http.StatusBadRequest, "validation", verr.Error())
		return
	}
	var perr *domain.PersistenceError
	if errors.As(err, &perr) {
		a.error(w, http.StatusInternalServerError, "persistence", "failed to store artifact")
		return
	}
	a.error(w, http.StatusInternalServerError, "internal", "unexpected error")
}

func artifactResponse(artifact *domain.ContentArtifact) map[string]any {
	return map[string]any{
		"id":                  artifact.ID,
		"title":               artifact.Title,
		"description":         artifact.Description,
		"video_url":           artifact.VideoURL,
		"thumbnail_url":       artifact.ThumbnailURL,
		"audio_url":           artifact.AudioURL,
		"duration":            artifact.Duration,
		"category":            artifact.Category,
		"difficulty":          artifact.Difficulty,
		"tags":                artifact.Tags,
		"content_source":      artifact.ContentSource,
		"generation_status":   artifact.Status,
		"ai_prompt":           artifact.Prompt,
		"ai_tools_used":       artifact.ToolsUsed,
		"generation_metadata": artifact.Metadata,
		"script_content":      artifact.Script,
		"voice_settings":      artifact.VoiceSettings,
		"visual_style":        artifact.VisualStyle,
		"target_audience":     artifact.TargetAudience,
		"creator_id":          artifact.CreatorID,
		"created_at":          artifact.CreatedAt,
		"updated_at":          artifact.UpdatedAt,
	}
}
