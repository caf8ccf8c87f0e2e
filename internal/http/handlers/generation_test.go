package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"eduvid/internal/adapter/repo"
	"eduvid/internal/domain"
	"eduvid/internal/infra"
	"eduvid/internal/pipeline"
	"eduvid/internal/providers"
	"eduvid/internal/providers/script"
)

type fakePipeline struct {
	scriptResult *script.Result
	scriptErr    error
	lastScript   domain.GenerationRequest
	artifact     *domain.ContentArtifact
	artifactErr  error
	batchCalled  chan []string
}

func (f *fakePipeline) GenerateScript(ctx context.Context, req domain.GenerationRequest) (*script.Result, error) {
	f.lastScript = req
	if f.scriptErr != nil {
		return nil, f.scriptErr
	}
	return f.scriptResult, nil
}

func (f *fakePipeline) CreateArtifact(ctx context.Context, p pipeline.CreateArtifactParams) (*domain.ContentArtifact, error) {
	if f.artifactErr != nil {
		return nil, f.artifactErr
	}
	return f.artifact, nil
}

func (f *fakePipeline) GenerateBatch(ctx context.Context, topics []string, category domain.Category, difficulty domain.Difficulty, creatorID string) []pipeline.BatchOutcome {
	if f.batchCalled != nil {
		f.batchCalled <- topics
	}
	return nil
}

type fakeArtifacts struct {
	artifact *domain.ContentArtifact
	err      error
}

func (f *fakeArtifacts) GetByID(ctx context.Context, id string) (*domain.ContentArtifact, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.artifact, nil
}

func (f *fakeArtifacts) ListAIGenerated(ctx context.Context, creatorID string, limit int) ([]domain.ContentArtifact, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.artifact == nil {
		return nil, nil
	}
	return []domain.ContentArtifact{*f.artifact}, nil
}

func (f *fakeArtifacts) StatsByCreator(ctx context.Context, creatorID string) (*repo.GenerationStats, error) {
	return &repo.GenerationStats{TotalArtifacts: 1, AIGenerated: 1}, nil
}

type fakeCreators struct{}

func (fakeCreators) GetOrCreateByUserID(ctx context.Context, userID, username string) (*domain.Creator, error) {
	return &domain.Creator{ID: "creator-1", UserID: userID}, nil
}

type fakeAssets struct {
	data map[string][]byte
}

func (f *fakeAssets) Read(ctx context.Context, key string) ([]byte, error) {
	if data, ok := f.data[key]; ok {
		return data, nil
	}
	return nil, errors.New("no such asset")
}

func newTestApp(p ContentPipeline, artifacts ArtifactStore) *App {
	cfg := &infra.Config{}
	return NewApp(p, &fakeUploader{}, artifacts, fakeCreators{}, &fakeAssets{}, providers.NewAvailability(cfg, zerolog.Nop()), zerolog.Nop())
}

func doRequest(t *testing.T, app *App, handler http.HandlerFunc, method, body string, withUser bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if withUser {
		req = authed(req)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestGenerateScriptHandler(t *testing.T) {
	p := &fakePipeline{scriptResult: &script.Result{
		Script:    "a script",
		ToolsUsed: []string{script.ToolPlaceholder},
	}}
	app := newTestApp(p, &fakeArtifacts{})

	rec := doRequest(t, app, app.GenerateScript, http.MethodPost,
		`{"topic":"Go","category":"programming","difficulty":"beginner"}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["script"] != "a script" {
		t.Fatalf("script = %v", resp["script"])
	}
}

func TestGenerateScriptHandlerDurationResolution(t *testing.T) {
	p := &fakePipeline{scriptResult: &script.Result{Script: "s"}}
	app := newTestApp(p, &fakeArtifacts{})

	// Absent field resolves to the default.
	doRequest(t, app, app.GenerateScript, http.MethodPost,
		`{"topic":"Go","category":"programming","difficulty":"beginner"}`, true)
	if p.lastScript.DurationMinutes != domain.DefaultDurationMinutes {
		t.Fatalf("DurationMinutes = %d, want default %d", p.lastScript.DurationMinutes, domain.DefaultDurationMinutes)
	}

	// An explicit zero is handed through untouched for validation to reject.
	doRequest(t, app, app.GenerateScript, http.MethodPost,
		`{"topic":"Go","category":"programming","difficulty":"beginner","duration_minutes":0}`, true)
	if p.lastScript.DurationMinutes != 0 {
		t.Fatalf("DurationMinutes = %d, want explicit 0 preserved", p.lastScript.DurationMinutes)
	}
}

func TestGenerateScriptHandlerRequiresUser(t *testing.T) {
	app := newTestApp(&fakePipeline{}, &fakeArtifacts{})
	rec := doRequest(t, app, app.GenerateScript, http.MethodPost, `{"topic":"Go"}`, false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestGenerateScriptHandlerValidation(t *testing.T) {
	p := &fakePipeline{scriptErr: &domain.ValidationError{Field: "topic", Reason: "must not be empty"}}
	app := newTestApp(p, &fakeArtifacts{})
	rec := doRequest(t, app, app.GenerateScript, http.MethodPost, `{"topic":""}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateArtifactHandlerPersistenceError(t *testing.T) {
	p := &fakePipeline{artifactErr: &domain.PersistenceError{Op: "create artifact", Err: errors.New("down")}}
	app := newTestApp(p, &fakeArtifacts{})
	rec := doRequest(t, app, app.CreateArtifact, http.MethodPost,
		`{"script":"s","title":"T","category":"ai","difficulty":"beginner"}`, true)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "persistence") {
		t.Fatalf("body = %s, want persistence error kind", rec.Body)
	}
}

func TestGenerateBatchHandlerDispatchesInBackground(t *testing.T) {
	p := &fakePipeline{batchCalled: make(chan []string, 1)}
	app := newTestApp(p, &fakeArtifacts{})

	rec := doRequest(t, app, app.GenerateBatch, http.MethodPost,
		`{"topics":["A","B"],"category":"programming","difficulty":"beginner"}`, true)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", rec.Code, rec.Body)
	}
	select {
	case topics := <-p.batchCalled:
		if len(topics) != 2 {
			t.Fatalf("topics = %v", topics)
		}
	case <-time.After(time.Second):
		t.Fatalf("batch was never dispatched")
	}
}

func TestGenerateBatchHandlerRejectsEmptyTopics(t *testing.T) {
	app := newTestApp(&fakePipeline{}, &fakeArtifacts{})
	rec := doRequest(t, app, app.GenerateBatch, http.MethodPost,
		`{"topics":[],"category":"programming","difficulty":"beginner"}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestServiceStatusHandler(t *testing.T) {
	app := newTestApp(&fakePipeline{}, &fakeArtifacts{})
	rec := doRequest(t, app, app.ServiceStatus, http.MethodGet, "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["chatgpt"] != false {
		t.Fatalf("chatgpt = %v, want false", resp["chatgpt"])
	}
}
