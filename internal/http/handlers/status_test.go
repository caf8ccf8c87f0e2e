package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"eduvid/internal/domain"
	"eduvid/internal/middleware"
)

// authed runs the request through the identity middleware with a test user.
func authed(req *http.Request) *http.Request {
	req.Header.Set("X-User-ID", "user-1")
	var out *http.Request
	middleware.UserID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		out = r
	})).ServeHTTP(httptest.NewRecorder(), req)
	return out
}

func TestGenerationStatusFound(t *testing.T) {
	artifact := &domain.ContentArtifact{
		ID:            "art-1",
		Title:         "Learn Go",
		Status:        domain.GenerationStatusCompleted,
		ContentSource: domain.ContentSourceAIGenerated,
		ToolsUsed:     []string{"placeholder"},
		CreatedAt:     time.Now(),
	}
	app := newTestApp(&fakePipeline{}, &fakeArtifacts{artifact: artifact})

	r := chi.NewRouter()
	r.Get("/v1/ai/generation-status/{artifact_id}", app.GenerationStatus)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ai/generation-status/art-1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"generation_status":"completed"`) {
		t.Fatalf("body = %s", rec.Body)
	}
}

func TestGenerationStatusNotFound(t *testing.T) {
	app := newTestApp(&fakePipeline{}, &fakeArtifacts{err: domain.ErrNotFound})

	r := chi.NewRouter()
	r.Get("/v1/ai/generation-status/{artifact_id}", app.GenerationStatus)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ai/generation-status/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGenerationStatsHandler(t *testing.T) {
	app := newTestApp(&fakePipeline{}, &fakeArtifacts{})
	rec := doRequest(t, app, app.GenerationStats, http.MethodGet, "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"total_artifacts":1`) {
		t.Fatalf("body = %s", rec.Body)
	}
}
