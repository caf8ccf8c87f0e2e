package handlers

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"eduvid/internal/domain"
)

func exportRequest(t *testing.T, app *App, artifactID string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/v1/ai/generated/{artifact_id}/export", app.ExportArtifact)
	rec := httptest.NewRecorder()
	req := authed(httptest.NewRequest(http.MethodGet, "/v1/ai/generated/"+artifactID+"/export", nil))
	r.ServeHTTP(rec, req)
	return rec
}

func archiveNames(t *testing.T, body []byte) []string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

func TestExportArtifactIncludesStoredAudio(t *testing.T) {
	artifact := &domain.ContentArtifact{
		ID:        "art-1",
		Title:     "Learn Go",
		Script:    "a script",
		AudioURL:  "audio/narration_abc.mp3",
		CreatorID: "creator-1",
	}
	app := newTestApp(&fakePipeline{}, &fakeArtifacts{artifact: artifact})
	app.Assets = &fakeAssets{data: map[string][]byte{
		"audio/narration_abc.mp3": []byte("mp3 bytes"),
	}}

	rec := exportRequest(t, app, "art-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/zip" {
		t.Fatalf("content type = %q", ct)
	}
	names := archiveNames(t, rec.Body.Bytes())
	want := []string{"script.txt", "metadata.json", "narration_abc.mp3"}
	if len(names) != len(want) {
		t.Fatalf("archive entries = %v, want %v", names, want)
	}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("archive entries = %v, want %v", names, want)
		}
	}
}

func TestExportArtifactSkipsScratchAudio(t *testing.T) {
	artifact := &domain.ContentArtifact{
		ID:        "art-2",
		Script:    "a script",
		AudioURL:  "temp/placeholder_audio_abc.mp3",
		CreatorID: "creator-1",
	}
	app := newTestApp(&fakePipeline{}, &fakeArtifacts{artifact: artifact})

	rec := exportRequest(t, app, "art-2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	names := archiveNames(t, rec.Body.Bytes())
	if len(names) != 2 || names[0] != "script.txt" || names[1] != "metadata.json" {
		t.Fatalf("archive entries = %v, want script and metadata only", names)
	}
}

func TestExportArtifactHidesForeignArtifacts(t *testing.T) {
	artifact := &domain.ContentArtifact{ID: "art-3", CreatorID: "someone-else"}
	app := newTestApp(&fakePipeline{}, &fakeArtifacts{artifact: artifact})

	rec := exportRequest(t, app, "art-3")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
