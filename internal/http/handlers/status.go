package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"eduvid/internal/domain"
)

// GenerationStatus reports the status projection of one artifact: its
// lifecycle state, content source, and the tools that produced it.
func (a *App) GenerationStatus(w http.ResponseWriter, r *http.Request) {
	artifactID := chi.URLParam(r, "artifact_id")
	if artifactID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "artifact_id required")
		return
	}
	artifact, err := a.Artifacts.GetByID(r.Context(), artifactID)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "artifact not found")
		return
	}
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load artifact")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"artifact_id":       artifact.ID,
		"title":             artifact.Title,
		"generation_status": artifact.Status,
		"content_source":    artifact.ContentSource,
		"ai_tools_used":     artifact.ToolsUsed,
		"created_at":        artifact.CreatedAt,
	})
}

// ServiceStatus reports per-stage provider availability.
func (a *App) ServiceStatus(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Availability.Status())
}

// GenerationStats aggregates generation counts for the calling creator.
func (a *App) GenerationStats(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	creator, err := a.Creators.GetOrCreateByUserID(r.Context(), userID, "")
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to resolve creator")
		return
	}
	stats, err := a.Artifacts.StatsByCreator(r.Context(), creator.ID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	a.json(w, http.StatusOK, stats)
}

// ListGenerated returns the caller's most recent AI-generated artifacts.
func (a *App) ListGenerated(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	creator, err := a.Creators.GetOrCreateByUserID(r.Context(), userID, "")
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to resolve creator")
		return
	}
	artifacts, err := a.Artifacts.ListAIGenerated(r.Context(), creator.ID, 20)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to list artifacts")
		return
	}
	items := make([]map[string]any, 0, len(artifacts))
	for i := range artifacts {
		items = append(items, artifactResponse(&artifacts[i]))
	}
	a.json(w, http.StatusOK, map[string]any{
		"total":  len(items),
		"videos": items,
	})
}
