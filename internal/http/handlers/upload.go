package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"eduvid/internal/domain"
	"eduvid/internal/pipeline"
)

// Multipart bodies buffer to disk beyond this; the size cap itself is
// enforced by the uploader.
const uploadMemoryLimit = 32 << 20

// UploadVideo ingests a manually produced video file as a new artifact.
func (a *App) UploadVideo(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	filename, data, ok := a.readUploadFile(w, r)
	if !ok {
		return
	}
	creator, err := a.Creators.GetOrCreateByUserID(r.Context(), userID, "")
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to resolve creator")
		return
	}

	artifact, err := a.Uploads.Upload(r.Context(), pipeline.UploadParams{
		Filename:    filename,
		Data:        data,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    domain.Category(r.FormValue("category")),
		Difficulty:  domain.Difficulty(r.FormValue("difficulty")),
		Tags:        r.FormValue("tags"),
		CreatorID:   creator.ID,
	})
	if err != nil {
		a.writeDomainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, artifactResponse(artifact))
}

// AttachVideo uploads the video file for an existing artifact, replacing the
// scratch reservation the video stage handed out.
func (a *App) AttachVideo(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	filename, data, ok := a.readUploadFile(w, r)
	if !ok {
		return
	}
	creator, err := a.Creators.GetOrCreateByUserID(r.Context(), userID, "")
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to resolve creator")
		return
	}

	artifact, err := a.Uploads.Attach(r.Context(), pipeline.AttachParams{
		ArtifactID: chi.URLParam(r, "artifact_id"),
		CreatorID:  creator.ID,
		Filename:   filename,
		Data:       data,
	})
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "artifact not found")
		return
	}
	if err != nil {
		a.writeDomainError(w, err)
		return
	}
	a.json(w, http.StatusOK, artifactResponse(artifact))
}

// UploadStats reports how many uploaded videos are stored and their total
// size.
func (a *App) UploadStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.Uploads.Stats(r.Context())
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to read upload stats")
		return
	}
	a.json(w, http.StatusOK, stats)
}

// readUploadFile pulls the "file" part out of a multipart form. On failure it
// writes the error response and reports ok=false.
func (a *App) readUploadFile(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return "", nil, false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "file field required")
		return "", nil, false
	}
	defer func() {
		_ = file.Close()
	}()
	data, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "could not read file")
		return "", nil, false
	}
	return header.Filename, data, true
}
