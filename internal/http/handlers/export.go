package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"eduvid/internal/domain"
	"eduvid/internal/storage"
	"eduvid/pkg/zip"
)

// ExportArtifact bundles one artifact's script, metadata, and any generated
// audio into a zip download. Assets still in the scratch namespace have no
// bytes yet and are left out of the archive.
func (a *App) ExportArtifact(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	artifactID := chi.URLParam(r, "artifact_id")
	artifact, err := a.Artifacts.GetByID(r.Context(), artifactID)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "artifact not found")
		return
	}
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load artifact")
		return
	}
	creator, err := a.Creators.GetOrCreateByUserID(r.Context(), userID, "")
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to resolve creator")
		return
	}
	if artifact.CreatorID != creator.ID {
		a.error(w, http.StatusNotFound, "not_found", "artifact not found")
		return
	}

	meta, err := json.MarshalIndent(artifactResponse(artifact), "", "  ")
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to encode metadata")
		return
	}
	assets := []zip.Asset{
		{Filename: "script.txt", Data: []byte(artifact.Script)},
		{Filename: "metadata.json", Data: meta},
	}
	if key := artifact.AudioURL; key != "" && !strings.HasPrefix(key, storage.ScratchNamespace+"/") {
		audio, err := a.Assets.Read(r.Context(), key)
		if err != nil {
			a.Logger.Warn().Err(err).Str("artifact_id", artifact.ID).Str("key", key).
				Msg("audio asset missing from storage, exporting without it")
		} else {
			assets = append(assets, zip.Asset{Filename: path.Base(key), Data: audio})
		}
	}

	archive, err := zip.Archive(assets)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to build archive")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.ID+".zip"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}
