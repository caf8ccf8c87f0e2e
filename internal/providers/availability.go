package providers

import "eduvid/internal/infra"

// Stage names the three steps of the generation pipeline.
type Stage string

const (
	StageScript    Stage = "script"
	StageNarration Stage = "narration"
	StageVideo     Stage = "video"
)

// Availability records, per stage, whether a real provider is configured.
// It is computed once at startup from credential presence and never probes
// the network; a provider that starts available and fails later is handled
// by the pipeline's per-call fallback, not by flipping these flags. The
// value is read-only after construction and safe for concurrent readers.
type Availability struct {
	script    bool
	narration bool
}

// NewAvailability derives stage availability from the loaded configuration
// and emits a one-time diagnostic per stage. Video synthesis has no real
// provider under the current scope, so that stage is always reported
// unavailable.
func NewAvailability(cfg *infra.Config, logger infra.Logger) Availability {
	a := Availability{
		script:    cfg.OpenAIAPIKey != "",
		narration: cfg.ElevenLabsAPIKey != "",
	}

	if a.script {
		logger.Info().Str("stage", string(StageScript)).Str("provider", "chatgpt").Msg("stage provider initialized")
	} else {
		logger.Warn().Str("stage", string(StageScript)).Msg("OPENAI_API_KEY not set, script stage will use placeholder output")
	}
	if a.narration {
		logger.Info().Str("stage", string(StageNarration)).Str("provider", "elevenlabs").Msg("stage provider initialized")
	} else {
		logger.Warn().Str("stage", string(StageNarration)).Msg("ELEVENLABS_API_KEY not set, narration stage will use placeholder output")
	}
	logger.Info().Str("stage", string(StageVideo)).Msg("video synthesis has no provider, manual upload required")

	return a
}

// IsAvailable reports whether a real provider is configured for the stage.
func (a Availability) IsAvailable(stage Stage) bool {
	switch stage {
	case StageScript:
		return a.script
	case StageNarration:
		return a.narration
	default:
		return false
	}
}

// Status returns the availability map exposed by the service-status endpoint.
func (a Availability) Status() map[string]any {
	return map[string]any{
		"chatgpt":          a.script,
		"elevenlabs":       a.narration,
		"video_generation": "manual upload required",
	}
}
