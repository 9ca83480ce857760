// File: services/chat/interpreter.go
package chat

import (
	"context"

	"placemate/models"
	"placemate/utils"

	"go.uber.org/zap"
)

const fallbackInvitation = "Tell me what you're in the mood for and I'll look through your saved places."

// Interpreter turns a free-text message plus the current slot state into a
// structured Intent. It never fails: when the language model is unavailable,
// errors, or returns something unusable, callers get the deterministic
// recommendation fallback with the slots unchanged.
type Interpreter struct {
	Model LanguageModel // nil when no credential is configured
}

// interpretation is the JSON shape the model is instructed to return.
type interpretation struct {
	Intent           string       `json:"intent"`
	Message          string       `json:"message"`
	TargetPlaceName  *string      `json:"targetPlaceName"`
	QuestionType     string       `json:"questionType"`
	Slots            models.Slots `json:"slots"`
	FollowUpQuestion *string      `json:"followUpQuestion"`
}

// Interpret classifies one message. The returned Intent always carries
// well-formed slot state: the current slots merged with whatever new values
// the model extracted.
func (it *Interpreter) Interpret(ctx context.Context, message string, current models.Slots) models.Intent {
	fallback := models.Intent{
		Kind:    models.IntentRecommendation,
		Message: fallbackInvitation,
		Slots:   current,
	}

	if it.Model == nil {
		return fallback
	}

	raw, err := it.Model.GenerateContent(ctx, buildInterpreterPrompt(message, current))
	if err != nil {
		utils.GetLogger().Warn("interpreter: provider call failed", zap.Error(err))
		return fallback
	}

	var parsed interpretation
	if err := utils.UnmarshalExtracted(raw, &parsed); err != nil {
		utils.GetLogger().Warn("interpreter: unusable provider response", zap.Error(err))
		return fallback
	}

	switch models.IntentKind(parsed.Intent) {
	case models.IntentInformational:
		intent := models.Intent{
			Kind:     models.IntentInformational,
			Message:  parsed.Message,
			Question: models.ParseQuestionKind(parsed.QuestionType),
			Slots:    current,
		}
		if parsed.TargetPlaceName != nil {
			intent.TargetPlaceName = *parsed.TargetPlaceName
		}
		return intent
	case models.IntentRecommendation:
		intent := models.Intent{
			Kind:    models.IntentRecommendation,
			Message: parsed.Message,
			Slots:   current.Merge(parsed.Slots),
		}
		if parsed.FollowUpQuestion != nil {
			intent.FollowUpQuestion = *parsed.FollowUpQuestion
		}
		return intent
	default:
		return fallback
	}
}
