// File: services/chat/explain.go
package chat

import (
	"context"
	"fmt"

	"placemate/models"
	"placemate/utils"

	"go.uber.org/zap"
)

const maxExplanationLen = 80

// generateExplanations requests one short explanation per ranked candidate in
// a single batched provider call. The reply must be a JSON array with exactly
// one string per candidate, in input order; anything else falls back to the
// deterministic template for ALL candidates, never a partial merge.
func generateExplanations(ctx context.Context, model LanguageModel, candidates []models.ScoredCandidate, slots models.Slots) []string {
	if len(candidates) == 0 {
		return nil
	}
	if model == nil {
		return fallbackExplanations(candidates)
	}

	raw, err := model.GenerateContent(ctx, buildExplanationPrompt(candidates, slots))
	if err != nil {
		utils.GetLogger().Warn("explanation: provider call failed", zap.Error(err))
		return fallbackExplanations(candidates)
	}

	var explanations []string
	if err := utils.UnmarshalExtracted(raw, &explanations); err != nil {
		utils.GetLogger().Warn("explanation: unusable provider response", zap.Error(err))
		return fallbackExplanations(candidates)
	}
	if len(explanations) != len(candidates) {
		utils.GetLogger().Warn("explanation: wrong array length",
			zap.Int("want", len(candidates)), zap.Int("got", len(explanations)))
		return fallbackExplanations(candidates)
	}

	for i, e := range explanations {
		// Character limit, never a byte slice: cutting mid-rune would hand
		// the client invalid UTF-8.
		if runes := []rune(e); len(runes) > maxExplanationLen {
			explanations[i] = string(runes[:maxExplanationLen])
		}
	}
	return explanations
}

// fallbackExplanations renders the deterministic per-place template.
func fallbackExplanations(candidates []models.ScoredCandidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		label := "place"
		if c.Details != nil && c.Details.PrimaryTypeLabel != "" {
			label = c.Details.PrimaryTypeLabel
		}
		if c.Details != nil && c.Details.Rating > 0 {
			out[i] = fmt.Sprintf("Great %s with %.1f★ rating", label, c.Details.Rating)
		} else {
			out[i] = fmt.Sprintf("Great %s with good reviews", label)
		}
	}
	return out
}
