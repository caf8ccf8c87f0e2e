package pipeline

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"eduvid/internal/domain"
	"eduvid/internal/infra"
	"eduvid/internal/storage"
)

const (
	maxUploadBytes               = 100 << 20
	uploadVideoNamespace         = "uploads/videos"
	uploadThumbnailNamespace     = "uploads/thumbnails"
	uploadDefaultDurationSeconds = 180
)

var allowedVideoExtensions = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mov":  true,
	".mkv":  true,
	".webm": true,
}

// UploadRepository is the persistence surface of the manual upload flow.
type UploadRepository interface {
	Create(ctx context.Context, artifact *domain.ContentArtifact) error
	GetByID(ctx context.Context, artifactID string) (*domain.ContentArtifact, error)
	CompleteUpload(ctx context.Context, artifactID, videoKey, thumbKey string, uploadMeta map[string]any) error
	MarkFailed(ctx context.Context, artifactID, reason string) error
}

// UploadStore is the storage surface of the manual upload flow.
type UploadStore interface {
	Write(ctx context.Context, key string, data []byte) (string, error)
	DirStats(ctx context.Context, prefix string) (int, int64, error)
}

// Uploader ingests manually produced video files. Standalone uploads become
// new artifacts with the `uploaded` content source; attaching to an existing
// artifact replaces the scratch reservations the video stage handed out.
type Uploader struct {
	repo   UploadRepository
	store  UploadStore
	logger infra.Logger
}

// NewUploader constructs the manual upload service.
func NewUploader(repo UploadRepository, store UploadStore, logger infra.Logger) *Uploader {
	return &Uploader{repo: repo, store: store, logger: logger}
}

// UploadParams are the inputs of a standalone video upload.
type UploadParams struct {
	Filename    string
	Data        []byte
	Title       string
	Description string
	Category    domain.Category
	Difficulty  domain.Difficulty
	Tags        string
	CreatorID   string
}

// Upload stores a manually produced video and creates its artifact record.
// The row is created as `pending` before any bytes are written and flipped to
// `completed` once the file is in place, so a crash mid-upload leaves an
// inspectable pending row instead of orphaned bytes.
func (u *Uploader) Upload(ctx context.Context, p UploadParams) (*domain.ContentArtifact, error) {
	if err := validateVideoFile(p.Filename, p.Data); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Title) == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if !p.Category.Valid() {
		return nil, &domain.ValidationError{Field: "category", Reason: "unknown category " + string(p.Category)}
	}
	if !p.Difficulty.Valid() {
		return nil, &domain.ValidationError{Field: "difficulty", Reason: "unknown difficulty " + string(p.Difficulty)}
	}
	if p.CreatorID == "" {
		return nil, &domain.ValidationError{Field: "creator_id", Reason: "must not be empty"}
	}

	token := uuid.NewString()
	ext := strings.ToLower(path.Ext(p.Filename))
	videoKey := fmt.Sprintf("%s/%s%s", uploadVideoNamespace, token, ext)
	thumbKey := fmt.Sprintf("%s/thumb_%s.jpg", uploadThumbnailNamespace, token)

	tags := p.Tags
	if tags == "" {
		tags = fmt.Sprintf("%s,%s,uploaded", p.Category, p.Difficulty)
	}

	now := time.Now().UTC()
	artifact := &domain.ContentArtifact{
		ID:            uuid.NewString(),
		Title:         p.Title,
		Description:   p.Description,
		VideoURL:      videoKey,
		ThumbnailURL:  thumbKey,
		Duration:      uploadDefaultDurationSeconds,
		Category:      p.Category,
		Difficulty:    p.Difficulty,
		Tags:          tags,
		ContentSource: domain.ContentSourceUploaded,
		Status:        domain.GenerationStatusPending,
		CreatorID:     p.CreatorID,
		Metadata: map[string]any{
			"original_filename": p.Filename,
			"file_size":         len(p.Data),
			"upload_method":     "manual",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.repo.Create(ctx, artifact); err != nil {
		return nil, &domain.PersistenceError{Op: "create upload", Err: err}
	}
	if _, err := u.store.Write(ctx, videoKey, p.Data); err != nil {
		u.markFailed(ctx, artifact.ID, err)
		return nil, &domain.PersistenceError{Op: "store upload", Err: err}
	}
	if _, err := u.store.Write(ctx, thumbKey, []byte("placeholder")); err != nil {
		// A missing thumbnail does not invalidate the upload.
		u.logger.Warn().Err(err).Str("artifact_id", artifact.ID).Msg("thumbnail write failed")
	}

	uploadMeta := map[string]any{"upload_time": now.Format(time.RFC3339)}
	if err := u.repo.CompleteUpload(ctx, artifact.ID, videoKey, thumbKey, uploadMeta); err != nil {
		u.markFailed(ctx, artifact.ID, err)
		return nil, &domain.PersistenceError{Op: "complete upload", Err: err}
	}

	artifact.Status = domain.GenerationStatusCompleted
	artifact.Metadata["upload_time"] = uploadMeta["upload_time"]
	u.logger.Info().Str("artifact_id", artifact.ID).Str("title", artifact.Title).
		Int("file_size", len(p.Data)).Msg("video uploaded")
	return artifact, nil
}

// AttachParams are the inputs when uploading the video for an existing
// artifact whose video stage produced a scratch reservation.
type AttachParams struct {
	ArtifactID string
	CreatorID  string
	Filename   string
	Data       []byte
}

// Attach stores the uploaded bytes and swaps them in for the artifact's
// scratch video key. Artifacts owned by someone else are reported as not
// found.
func (u *Uploader) Attach(ctx context.Context, p AttachParams) (*domain.ContentArtifact, error) {
	if err := validateVideoFile(p.Filename, p.Data); err != nil {
		return nil, err
	}
	artifact, err := u.repo.GetByID(ctx, p.ArtifactID)
	if err != nil {
		return nil, err
	}
	if artifact.CreatorID != p.CreatorID {
		return nil, domain.ErrNotFound
	}

	token := uuid.NewString()
	ext := strings.ToLower(path.Ext(p.Filename))
	videoKey := fmt.Sprintf("%s/%s%s", uploadVideoNamespace, token, ext)
	if _, err := u.store.Write(ctx, videoKey, p.Data); err != nil {
		return nil, &domain.PersistenceError{Op: "store upload", Err: err}
	}

	thumbKey := artifact.ThumbnailURL
	if strings.HasPrefix(thumbKey, storage.ScratchNamespace+"/") {
		thumbKey = fmt.Sprintf("%s/thumb_%s.jpg", uploadThumbnailNamespace, token)
		if _, err := u.store.Write(ctx, thumbKey, []byte("placeholder")); err != nil {
			u.logger.Warn().Err(err).Str("artifact_id", artifact.ID).Msg("thumbnail write failed")
			thumbKey = artifact.ThumbnailURL
		}
	}

	now := time.Now().UTC()
	uploadMeta := map[string]any{
		"upload_time":       now.Format(time.RFC3339),
		"original_filename": p.Filename,
		"file_size":         len(p.Data),
		"upload_method":     "manual",
	}
	if err := u.repo.CompleteUpload(ctx, artifact.ID, videoKey, thumbKey, uploadMeta); err != nil {
		return nil, &domain.PersistenceError{Op: "complete upload", Err: err}
	}

	artifact.VideoURL = videoKey
	artifact.ThumbnailURL = thumbKey
	artifact.Status = domain.GenerationStatusCompleted
	artifact.UpdatedAt = now
	if artifact.Metadata == nil {
		artifact.Metadata = map[string]any{}
	}
	for k, v := range uploadMeta {
		artifact.Metadata[k] = v
	}
	u.logger.Info().Str("artifact_id", artifact.ID).Msg("video attached to artifact")
	return artifact, nil
}

// Stats summarizes the upload namespace.
func (u *Uploader) Stats(ctx context.Context) (map[string]any, error) {
	count, totalBytes, err := u.store.DirStats(ctx, uploadVideoNamespace)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"video_count":   count,
		"total_size_mb": totalBytes / (1024 * 1024),
		"upload_dir":    uploadVideoNamespace,
		"thumbnail_dir": uploadThumbnailNamespace,
	}, nil
}

func validateVideoFile(filename string, data []byte) error {
	ext := strings.ToLower(path.Ext(filename))
	if !allowedVideoExtensions[ext] {
		return &domain.ValidationError{Field: "file", Reason: "unsupported video format " + ext}
	}
	if len(data) == 0 {
		return &domain.ValidationError{Field: "file", Reason: "must not be empty"}
	}
	if len(data) > maxUploadBytes {
		return &domain.ValidationError{Field: "file", Reason: fmt.Sprintf("exceeds %dMB limit", maxUploadBytes>>20)}
	}
	return nil
}

func (u *Uploader) markFailed(ctx context.Context, artifactID string, cause error) {
	if err := u.repo.MarkFailed(ctx, artifactID, cause.Error()); err != nil {
		u.logger.Error().Err(err).Str("artifact_id", artifactID).
			Msg("could not mark upload failed")
	}
}
