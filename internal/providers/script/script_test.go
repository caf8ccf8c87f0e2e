package script

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eduvid/internal/domain"
)

func placeholderRequest() Request {
	return Request{
		Topic:           "Goroutines",
		Category:        domain.CategoryProgramming,
		Difficulty:      domain.DifficultyBeginner,
		TargetAudience:  "beginners",
		DurationMinutes: 3,
		Style:           "engaging and educational",
	}
}

func TestPlaceholderGenerate(t *testing.T) {
	res, err := NewPlaceholder().Generate(context.Background(), placeholderRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(res.Script, "Goroutines") {
		t.Fatalf("script does not mention the topic: %q", res.Script)
	}
	if !strings.Contains(res.Script, "3-minute") {
		t.Fatalf("script does not mention the duration: %q", res.Script)
	}
	if len(res.ToolsUsed) != 1 || res.ToolsUsed[0] != ToolPlaceholder {
		t.Fatalf("ToolsUsed = %v, want [%s]", res.ToolsUsed, ToolPlaceholder)
	}
	if res.Metadata.Model != ToolPlaceholder {
		t.Fatalf("Model = %q, want %s", res.Metadata.Model, ToolPlaceholder)
	}
}

func TestPlaceholderDeterministicModuloTimestamp(t *testing.T) {
	req := placeholderRequest()
	first, _ := NewPlaceholder().Generate(context.Background(), req)
	second, _ := NewPlaceholder().Generate(context.Background(), req)
	if first.Script != second.Script {
		t.Fatalf("identical requests produced different scripts")
	}
}

func TestOpenAIGeneratorSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"role": "assistant", "content": "Intro. Body. Outro."}},
			},
		})
	}))
	defer srv.Close()

	gen, err := NewOpenAIGenerator(OpenAIOptions{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewOpenAIGenerator: %v", err)
	}
	res, err := gen.Generate(context.Background(), placeholderRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Script != "Intro. Body. Outro." {
		t.Fatalf("Script = %q", res.Script)
	}
	if len(res.ToolsUsed) != 1 || res.ToolsUsed[0] != ToolChatGPT {
		t.Fatalf("ToolsUsed = %v, want [%s]", res.ToolsUsed, ToolChatGPT)
	}
}

func TestOpenAIGeneratorUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	gen, err := NewOpenAIGenerator(OpenAIOptions{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewOpenAIGenerator: %v", err)
	}
	_, err = gen.Generate(context.Background(), placeholderRequest())
	var perr *domain.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *domain.ProviderError", err)
	}
	if perr.Stage != "script" || perr.Provider != ToolChatGPT {
		t.Fatalf("ProviderError = %+v", perr)
	}
}

func TestOpenAIGeneratorEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	gen, _ := NewOpenAIGenerator(OpenAIOptions{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	_, err := gen.Generate(context.Background(), placeholderRequest())
	var perr *domain.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *domain.ProviderError", err)
	}
}

func TestNewOpenAIGeneratorRequiresKey(t *testing.T) {
	if _, err := NewOpenAIGenerator(OpenAIOptions{}); err == nil {
		t.Fatalf("expected error without api key")
	}
}
