// File: services/chat/chat.go
package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"placemate/models"
	"placemate/utils"

	"go.uber.org/zap"
)

const (
	maxResults = 5

	modeChat           = "chat"
	modeInformational  = "informational"
	modeRecommendation = "recommendation"

	welcomeMessage = "Hi! I can help you pick something from your saved places. Tell me what you're looking for — a cuisine, a vibe, somewhere open now."
	noMatchMessage = "I couldn't find any saved places matching that. Try adjusting your search — a broader category or a different list, maybe."
	apologyMessage = "Sorry, something went wrong on my end. Please try that again."
)

var greetingWords = map[string]bool{
	"hi": true, "hello": true, "hey": true, "yo": true,
	"hiya": true, "howdy": true, "morning": true, "evening": true,
	"good": true, "afternoon": true, "there": true,
}

// isGreeting reports whether the message is a short standalone greeting: at
// most 5 tokens, every token from the fixed greeting vocabulary.
func isGreeting(message string) bool {
	cleaned := strings.ToLower(strings.TrimSpace(message))
	cleaned = strings.Trim(cleaned, "!.?,")
	tokens := strings.Fields(cleaned)
	if len(tokens) == 0 || len(tokens) > 5 {
		return false
	}
	for _, t := range tokens {
		if !greetingWords[strings.Trim(t, "!.?,")] {
			return false
		}
	}
	return true
}

// HandleMessage runs one full chat turn: greeting check, interpretation, then
// either the informational answer or the recommendation pipeline. Each path
// is terminal within the turn; session slots persist into the next one.
func (s *DefaultChatService) HandleMessage(ctx context.Context, req models.ChatRequest) (resp *models.ChatResponse, err error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("message text is required")
	}

	// Nothing inside the pipeline may escape to the caller: any unexpected
	// failure becomes a generic apology with the failed flag set.
	defer func() {
		if r := recover(); r != nil {
			utils.GetLogger().Error("chat: turn panicked", zap.Any("panic", r))
			resp = &models.ChatResponse{
				AssistantMessage: apologyMessage,
				Mode:             modeChat,
				Results:          []models.ResultRecord{},
				Failed:           true,
			}
			err = nil
		}
	}()

	slots, storeErr := s.Sessions.Get(ctx, req.Context.SessionID)
	if storeErr != nil {
		utils.GetLogger().Warn("chat: session load failed", zap.Error(storeErr))
		slots = models.Slots{}
	}
	if req.Context.Slots != nil {
		slots = slots.Merge(*req.Context.Slots)
	}

	if isGreeting(req.Message) && slots.IsEmpty() {
		return &models.ChatResponse{
			AssistantMessage: welcomeMessage,
			Mode:             modeChat,
			UpdatedSlots:     slots,
			Results:          []models.ResultRecord{},
		}, nil
	}

	intent := s.interpreter.Interpret(ctx, req.Message, slots)

	switch intent.Kind {
	case models.IntentInformational:
		return s.handleInformational(ctx, req, intent, slots), nil
	case models.IntentRecommendation:
		return s.handleRecommendation(ctx, req, intent), nil
	default:
		// The interpreter only emits the two kinds above; guarded anyway.
		return s.handleRecommendation(ctx, req, intent), nil
	}
}

func (s *DefaultChatService) handleInformational(ctx context.Context, req models.ChatRequest, intent models.Intent, slots models.Slots) *models.ChatResponse {
	placeSet := s.loadPlaces(req.Context.ListName)
	answer := answerInformational(ctx, s.Details, placeSet, intent)

	return &models.ChatResponse{
		AssistantMessage: answer,
		Mode:             modeInformational,
		UpdatedSlots:     slots,
		Results:          []models.ResultRecord{},
	}
}

func (s *DefaultChatService) handleRecommendation(ctx context.Context, req models.ChatRequest, intent models.Intent) *models.ChatResponse {
	if err := s.Sessions.Set(ctx, req.Context.SessionID, intent.Slots); err != nil {
		utils.GetLogger().Warn("chat: session save failed", zap.Error(err))
	}

	placeSet := s.loadPlaces(req.Context.ListName)
	candidates := filterCandidates(placeSet, intent.Slots)
	if len(candidates) == 0 {
		return &models.ChatResponse{
			AssistantMessage: noMatchMessage,
			Mode:             modeRecommendation,
			UpdatedSlots:     intent.Slots,
			Results:          []models.ResultRecord{},
			OptionalQuestion: intent.FollowUpQuestion,
		}
	}

	pool := enrichCandidates(ctx, s.Details, candidates)
	for i := range pool {
		pool[i].Score = scorePlace(pool[i].Place, intent.Slots, pool[i].Details, req.Context.UserLocation)
	}

	// Stable: ties keep filter order.
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Score > pool[j].Score
	})
	if len(pool) > maxResults {
		pool = pool[:maxResults]
	}

	// Guarded; cannot happen once the filter returned candidates.
	if len(pool) == 0 {
		return &models.ChatResponse{
			AssistantMessage: noMatchMessage,
			Mode:             modeRecommendation,
			UpdatedSlots:     intent.Slots,
			Results:          []models.ResultRecord{},
			OptionalQuestion: intent.FollowUpQuestion,
		}
	}

	explanations := generateExplanations(ctx, s.Model, pool, intent.Slots)

	results := make([]models.ResultRecord, len(pool))
	for i, c := range pool {
		results[i] = buildResultRecord(c, explanations[i])
	}

	message := intent.Message
	if message == "" {
		message = fmt.Sprintf("Here are the best matches from your saved places — %d of them stood out.", len(results))
	}

	return &models.ChatResponse{
		AssistantMessage: message,
		Mode:             modeRecommendation,
		UpdatedSlots:     intent.Slots,
		Results:          results,
		OptionalQuestion: intent.FollowUpQuestion,
	}
}

// loadPlaces reads the saved-place set, scoped to one list when given. Read
// failures degrade to an empty set; the turn then reports no matches.
func (s *DefaultChatService) loadPlaces(listName string) []models.Place {
	var (
		placeSet []models.Place
		err      error
	)
	if listName != "" {
		placeSet, err = s.Repo.GetByListName(listName)
	} else {
		placeSet, err = s.Repo.GetAll()
	}
	if err != nil {
		utils.GetLogger().Warn("chat: failed to load places", zap.Error(err))
		return nil
	}
	return placeSet
}

func buildResultRecord(c models.ScoredCandidate, explanation string) models.ResultRecord {
	rec := models.ResultRecord{
		ID:          c.Place.ID,
		ExternalID:  c.Place.ExternalID,
		Name:        c.Place.Name,
		Address:     c.Place.Address,
		Category:    c.Place.Type,
		Explanation: explanation,
		Score:       c.Score,
		Coordinates: c.Place.Coordinates,
	}
	if d := c.Details; d != nil {
		if d.FormattedAddress != "" {
			rec.Address = d.FormattedAddress
		}
		rec.Rating = d.Rating
		rec.RatingCount = d.RatingCount
		rec.PriceLevel = d.PriceLevel
		if d.PrimaryType != "" {
			rec.Category = d.PrimaryType
		}
		rec.CategoryLabel = d.PrimaryTypeLabel
		rec.Types = d.Types
		rec.ReviewSummary = d.EditorialSummary
		if d.OpeningHours != nil {
			rec.OpenNow = d.OpeningHours.OpenNow
			rec.WeekdayText = strings.Join(d.OpeningHours.WeekdayText, "\n")
		}
	}
	return rec
}
