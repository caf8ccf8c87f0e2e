package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eduvid/internal/domain"
	"eduvid/internal/sqlinline"
)

// ArtifactRepositoryPG persists content artifacts in PostgreSQL. The JSON
// columns (tools, metadata, voice settings) are marshalled explicitly so the
// stored shape matches what the status endpoints return.
type ArtifactRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewArtifactRepository constructs a new artifact repository instance.
func NewArtifactRepository(pool *pgxpool.Pool) *ArtifactRepositoryPG {
	return &ArtifactRepositoryPG{pool: pool}
}

// Create inserts a new artifact record.
func (r *ArtifactRepositoryPG) Create(ctx context.Context, a *domain.ContentArtifact) error {
	tools, meta, voice, err := marshalJSONFields(a)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, sqlinline.QInsertArtifact,
		a.ID, a.Title, a.Description, a.Script, a.AudioURL, a.VideoURL, a.ThumbnailURL,
		a.Duration, a.Category, a.Difficulty, a.Tags, a.ContentSource, a.Status,
		a.Prompt, tools, meta, voice,
		a.VisualStyle, a.TargetAudience, a.CreatorID, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

// UpdateGeneration updates the generation outcome of an existing artifact:
// status, asset references, duration, tools, and metadata in one statement so
// there is no partial-row visibility.
func (r *ArtifactRepositoryPG) UpdateGeneration(ctx context.Context, a *domain.ContentArtifact) error {
	tools, meta, voice, err := marshalJSONFields(a)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, sqlinline.QUpdateArtifactGeneration,
		a.ID, a.Status, a.AudioURL, a.VideoURL, a.ThumbnailURL,
		a.Duration, tools, meta, voice, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkFailed flips an artifact to the failed status and records the reason.
func (r *ArtifactRepositoryPG) MarkFailed(ctx context.Context, artifactID, reason string) error {
	_, err := r.pool.Exec(ctx, sqlinline.QMarkArtifactFailed, artifactID, domain.GenerationStatusFailed, reason)
	return err
}

// CompleteUpload records that the video bytes for an artifact landed in
// storage: final asset keys, completed status, and the upload bookkeeping
// merged into the metadata.
func (r *ArtifactRepositoryPG) CompleteUpload(ctx context.Context, artifactID, videoKey, thumbKey string, uploadMeta map[string]any) error {
	if uploadMeta == nil {
		uploadMeta = map[string]any{}
	}
	meta, err := json.Marshal(uploadMeta)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, sqlinline.QCompleteUpload,
		artifactID, domain.GenerationStatusCompleted, videoKey, thumbKey, meta, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID loads one artifact.
func (r *ArtifactRepositoryPG) GetByID(ctx context.Context, artifactID string) (*domain.ContentArtifact, error) {
	row := r.pool.QueryRow(ctx, sqlinline.QGetArtifactByID, artifactID)
	artifact, err := scanArtifact(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return artifact, err
}

// ListAIGenerated returns the most recent AI-generated artifacts for a creator.
func (r *ArtifactRepositoryPG) ListAIGenerated(ctx context.Context, creatorID string, limit int) ([]domain.ContentArtifact, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, sqlinline.QListAIGeneratedArtifacts, creatorID, domain.ContentSourceAIGenerated, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artifacts []domain.ContentArtifact
	for rows.Next() {
		artifact, err := scanArtifact(rows)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, *artifact)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// GenerationStats summarizes a creator's generated content.
type GenerationStats struct {
	TotalArtifacts int64            `json:"total_artifacts"`
	AIGenerated    int64            `json:"ai_generated"`
	Pending        int64            `json:"pending_generation"`
	Failed         int64            `json:"failed_generation"`
	ByCategory     map[string]int64 `json:"by_category"`
	ByDifficulty   map[string]int64 `json:"by_difficulty"`
}

// StatsByCreator aggregates generation counts for one creator.
func (r *ArtifactRepositoryPG) StatsByCreator(ctx context.Context, creatorID string) (*GenerationStats, error) {
	stats := &GenerationStats{
		ByCategory:   map[string]int64{},
		ByDifficulty: map[string]int64{},
	}

	row := r.pool.QueryRow(ctx, sqlinline.QArtifactCounts,
		creatorID, domain.ContentSourceAIGenerated, domain.GenerationStatusPending, domain.GenerationStatusFailed)
	if err := row.Scan(&stats.TotalArtifacts, &stats.AIGenerated, &stats.Pending, &stats.Failed); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sqlinline.QArtifactBreakdown, creatorID, domain.ContentSourceAIGenerated)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var category, difficulty string
		var count int64
		if err := rows.Scan(&category, &difficulty, &count); err != nil {
			return nil, err
		}
		stats.ByCategory[category] += count
		stats.ByDifficulty[difficulty] += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArtifact(row rowScanner) (*domain.ContentArtifact, error) {
	var a domain.ContentArtifact
	var tools, meta, voice []byte
	if err := row.Scan(
		&a.ID, &a.Title, &a.Description, &a.Script, &a.AudioURL, &a.VideoURL, &a.ThumbnailURL,
		&a.Duration, &a.Category, &a.Difficulty, &a.Tags, &a.ContentSource, &a.Status,
		&a.Prompt, &tools, &meta, &voice,
		&a.VisualStyle, &a.TargetAudience, &a.CreatorID, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(tools) > 0 {
		if err := json.Unmarshal(tools, &a.ToolsUsed); err != nil {
			return nil, err
		}
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &a.Metadata); err != nil {
			return nil, err
		}
	}
	if len(voice) > 0 {
		if err := json.Unmarshal(voice, &a.VoiceSettings); err != nil {
			return nil, err
		}
	}
	return &a, nil
}

func marshalJSONFields(a *domain.ContentArtifact) (tools, meta, voice []byte, err error) {
	if tools, err = json.Marshal(a.ToolsUsed); err != nil {
		return nil, nil, nil, err
	}
	if a.Metadata == nil {
		a.Metadata = map[string]any{}
	}
	if meta, err = json.Marshal(a.Metadata); err != nil {
		return nil, nil, nil, err
	}
	if a.VoiceSettings == nil {
		a.VoiceSettings = map[string]any{}
	}
	if voice, err = json.Marshal(a.VoiceSettings); err != nil {
		return nil, nil, nil, err
	}
	return tools, meta, voice, nil
}
