package narration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"eduvid/internal/domain"
	"eduvid/internal/storage"
)

const (
	elevenLabsDefaultTimeout = 60 * time.Second
	elevenLabsDefaultBase    = "https://api.elevenlabs.io"
	elevenLabsDefaultVoice   = "Josh"
	elevenLabsDefaultModel   = "eleven_monolingual_v1"

	// ElevenLabs streams 128 kbps MP3; used to approximate duration from size.
	mp3BytesPerSecond = 16000
)

// ElevenLabsOptions configures the text-to-speech synthesizer.
type ElevenLabsOptions struct {
	APIKey     string
	Voice      string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Store      *storage.FileStore
}

// ElevenLabsSynthesizer turns script text into narration audio through the
// ElevenLabs text-to-speech API and persists the MP3 through the file store.
// Every failure is reported as a domain.ProviderError; no internal retries.
type ElevenLabsSynthesizer struct {
	apiKey  string
	voice   string
	model   string
	baseURL string
	client  *http.Client
	store   *storage.FileStore
}

type elevenLabsRequest struct {
	Text          string                 `json:"text"`
	ModelID       string                 `json:"model_id"`
	VoiceSettings map[string]any         `json:"voice_settings,omitempty"`
}

// NewElevenLabsSynthesizer constructs a synthesizer from the given options.
func NewElevenLabsSynthesizer(opts ElevenLabsOptions) (*ElevenLabsSynthesizer, error) {
	if opts.APIKey == "" {
		return nil, errors.New("elevenlabs api key is required")
	}
	if opts.Store == nil {
		return nil, errors.New("elevenlabs synthesizer requires a file store")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = elevenLabsDefaultBase
	}
	voice := strings.TrimSpace(opts.Voice)
	if voice == "" {
		voice = elevenLabsDefaultVoice
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = elevenLabsDefaultModel
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: elevenLabsDefaultTimeout}
	}
	return &ElevenLabsSynthesizer{
		apiKey:  opts.APIKey,
		voice:   voice,
		model:   model,
		baseURL: baseURL,
		client:  client,
		store:   opts.Store,
	}, nil
}

func (s *ElevenLabsSynthesizer) Synthesize(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Script) == "" {
		return nil, domain.NewProviderError("narration", ToolElevenLabs, errors.New("empty script"))
	}

	settings := map[string]any{
		"voice":            s.voice,
		"model":            s.model,
		"stability":        0.5,
		"similarity_boost": 0.75,
	}
	for k, v := range req.VoiceSettings {
		settings[k] = v
	}

	payload := elevenLabsRequest{
		Text:    req.Script,
		ModelID: s.model,
		VoiceSettings: map[string]any{
			"stability":        settings["stability"],
			"similarity_boost": settings["similarity_boost"],
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, domain.NewProviderError("narration", ToolElevenLabs, err)
	}

	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s", s.baseURL, url.PathEscape(s.voice))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, domain.NewProviderError("narration", ToolElevenLabs, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "audio/mpeg")
	httpReq.Header.Set("xi-api-key", s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, domain.NewProviderError("narration", ToolElevenLabs, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return nil, domain.NewProviderError("narration", ToolElevenLabs,
			fmt.Errorf("text-to-speech returned status %d", resp.StatusCode))
	}
	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewProviderError("narration", ToolElevenLabs, err)
	}
	if len(audio) == 0 {
		return nil, domain.NewProviderError("narration", ToolElevenLabs, errors.New("empty audio response"))
	}

	key := fmt.Sprintf("audio/narration_%s.mp3", uuid.NewString())
	storedKey, err := s.store.Write(ctx, key, audio)
	if err != nil {
		return nil, domain.NewProviderError("narration", ToolElevenLabs, err)
	}

	return &Result{
		AudioKey:        storedKey,
		DurationSeconds: float64(len(audio)) / mp3BytesPerSecond,
		VoiceSettings:   settings,
		ToolsUsed:       []string{ToolElevenLabs},
		GeneratedAt:     time.Now().UTC(),
		Model:           s.model,
	}, nil
}

var _ Synthesizer = (*ElevenLabsSynthesizer)(nil)
