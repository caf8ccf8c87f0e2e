package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"eduvid/internal/adapter/repo"
	"eduvid/internal/domain"
	"eduvid/internal/infra"
	"eduvid/internal/middleware"
	"eduvid/internal/pipeline"
	"eduvid/internal/providers"
	"eduvid/internal/providers/script"
)

// ContentPipeline is the generation surface the handlers depend on.
type ContentPipeline interface {
	GenerateScript(ctx context.Context, req domain.GenerationRequest) (*script.Result, error)
	CreateArtifact(ctx context.Context, p pipeline.CreateArtifactParams) (*domain.ContentArtifact, error)
	GenerateBatch(ctx context.Context, topics []string, category domain.Category, difficulty domain.Difficulty, creatorID string) []pipeline.BatchOutcome
}

// ArtifactStore is the read side used by status and stats endpoints.
type ArtifactStore interface {
	GetByID(ctx context.Context, artifactID string) (*domain.ContentArtifact, error)
	ListAIGenerated(ctx context.Context, creatorID string, limit int) ([]domain.ContentArtifact, error)
	StatsByCreator(ctx context.Context, creatorID string) (*repo.GenerationStats, error)
}

// CreatorStore resolves the creator record owned by an authenticated user.
type CreatorStore interface {
	GetOrCreateByUserID(ctx context.Context, userID, username string) (*domain.Creator, error)
}

// AssetReader loads stored asset bytes by storage key.
type AssetReader interface {
	Read(ctx context.Context, key string) ([]byte, error)
}

// VideoUploader is the manual upload surface the handlers depend on.
type VideoUploader interface {
	Upload(ctx context.Context, p pipeline.UploadParams) (*domain.ContentArtifact, error)
	Attach(ctx context.Context, p pipeline.AttachParams) (*domain.ContentArtifact, error)
	Stats(ctx context.Context) (map[string]any, error)
}

// App bundles the dependencies of the HTTP handlers.
type App struct {
	Pipeline     ContentPipeline
	Uploads      VideoUploader
	Artifacts    ArtifactStore
	Creators     CreatorStore
	Assets       AssetReader
	Availability providers.Availability
	Logger       infra.Logger
}

// NewApp constructs the handler container.
func NewApp(p ContentPipeline, uploads VideoUploader, artifacts ArtifactStore, creators CreatorStore, assets AssetReader, avail providers.Availability, logger infra.Logger) *App {
	return &App{
		Pipeline:     p,
		Uploads:      uploads,
		Artifacts:    artifacts,
		Creators:     creators,
		Assets:       assets,
		Availability: avail,
		Logger:       logger,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, map[string]any{
		"error":   kind,
		"message": message,
	})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}
