package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"eduvid/internal/domain"
)

var titleCaser = cases.Title(language.English)

// BatchOutcome records what happened to one topic in a batch: either the
// produced artifact or the error that stopped it. Keeping the topic attached
// means a batch never loses which items failed.
type BatchOutcome struct {
	Topic    string
	Artifact *domain.ContentArtifact
	Err      error
}

// Artifacts projects the successful artifacts out of a set of outcomes,
// preserving attempt order.
func Artifacts(outcomes []BatchOutcome) []*domain.ContentArtifact {
	var out []*domain.ContentArtifact
	for _, o := range outcomes {
		if o.Err == nil && o.Artifact != nil {
			out = append(out, o.Artifact)
		}
	}
	return out
}

// GenerateBatch fans the topics through the full single-artifact pipeline,
// strictly one at a time. Each topic is isolated: a failure is logged,
// recorded in its outcome, and the batch moves on. A pacing delay is applied
// between consecutive items (never after the last) to stay inside provider
// rate limits; the delay and the loop both honor ctx cancellation.
func (g *Generator) GenerateBatch(ctx context.Context, topics []string, category domain.Category, difficulty domain.Difficulty, creatorID string) []BatchOutcome {
	outcomes := make([]BatchOutcome, 0, len(topics))

	for i, topic := range topics {
		if err := ctx.Err(); err != nil {
			outcomes = append(outcomes, BatchOutcome{Topic: topic, Err: err})
			continue
		}

		artifact, err := g.generateOne(ctx, topic, category, difficulty, creatorID)
		if err != nil {
			g.logger.Error().Err(err).Str("topic", topic).Msg("batch item failed, continuing")
		}
		outcomes = append(outcomes, BatchOutcome{Topic: topic, Artifact: artifact, Err: err})

		if i < len(topics)-1 {
			if err := sleepCtx(ctx, g.pacing); err != nil {
				// Remaining topics are recorded as cancelled on the next
				// loop iterations.
				continue
			}
		}
	}

	return outcomes
}

// generateOne runs script generation and artifact creation for a single
// batch topic.
func (g *Generator) generateOne(ctx context.Context, topic string, category domain.Category, difficulty domain.Difficulty, creatorID string) (*domain.ContentArtifact, error) {
	scriptRes, err := g.GenerateScript(ctx, domain.GenerationRequest{
		Topic:           topic,
		Category:        category,
		Difficulty:      difficulty,
		DurationMinutes: domain.DefaultDurationMinutes,
	})
	if err != nil {
		return nil, err
	}

	return g.CreateArtifact(ctx, CreateArtifactParams{
		Script:      scriptRes.Script,
		Title:       batchTitle(topic, difficulty),
		Category:    category,
		Difficulty:  difficulty,
		CreatorID:   creatorID,
		Prompt:      fmt.Sprintf("Create an educational video about %s", topic),
		ScriptTools: scriptRes.ToolsUsed,
	})
}

// batchTitle derives a display title from the topic and difficulty.
func batchTitle(topic string, difficulty domain.Difficulty) string {
	return fmt.Sprintf("Learn %s - %s Guide", topic, titleCaser.String(string(difficulty)))
}

// sleepCtx waits for d without blocking cancellation.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
