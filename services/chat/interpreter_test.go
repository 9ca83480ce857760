package chat

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"placemate/models"
)

// mockModel returns a canned response or error and counts calls.
type mockModel struct {
	response string
	err      error
	calls    atomic.Int32
}

func (m *mockModel) GenerateContent(ctx context.Context, prompt string) (string, error) {
	m.calls.Add(1)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func TestInterpretNoModelFallsBack(t *testing.T) {
	it := &Interpreter{}
	current := models.Slots{Category: "cafe"}

	intent := it.Interpret(context.Background(), "something nice", current)
	if intent.Kind != models.IntentRecommendation {
		t.Errorf("fallback intent should be recommendation, got %s", intent.Kind)
	}
	if intent.Slots.Category != "cafe" {
		t.Errorf("fallback must leave slots unchanged")
	}
	if intent.Message == "" {
		t.Errorf("fallback must carry an assistant message")
	}
}

func TestInterpretProviderErrorFallsBack(t *testing.T) {
	it := &Interpreter{Model: &mockModel{err: errors.New("timeout")}}
	intent := it.Interpret(context.Background(), "pizza tonight", models.Slots{})
	if intent.Kind != models.IntentRecommendation {
		t.Errorf("provider error should fall back to recommendation")
	}
	if !intent.Slots.IsEmpty() {
		t.Errorf("provider error must not invent slots")
	}
}

func TestInterpretMalformedResponseFallsBack(t *testing.T) {
	for _, response := range []string{"sure, here you go!", "{broken json", ""} {
		it := &Interpreter{Model: &mockModel{response: response}}
		intent := it.Interpret(context.Background(), "pizza", models.Slots{})
		if intent.Kind != models.IntentRecommendation {
			t.Errorf("response %q should fall back to recommendation", response)
		}
	}
}

func TestInterpretRecommendationMergesSlots(t *testing.T) {
	response := "Here is my answer:\n```json\n" +
		`{"intent":"recommendation","message":"Vegan it is!","slots":{"cuisine":"vegan","price":"cheap"},"followUpQuestion":"Indoor or terrace?"}` +
		"\n```"
	it := &Interpreter{Model: &mockModel{response: response}}
	current := models.Slots{Category: "restaurant"}

	intent := it.Interpret(context.Background(), "cheap vegan food", current)
	if intent.Kind != models.IntentRecommendation {
		t.Fatalf("expected recommendation, got %s", intent.Kind)
	}
	if intent.Slots.Category != "restaurant" {
		t.Errorf("existing slot overwritten without new information")
	}
	if intent.Slots.Cuisine != "vegan" || intent.Slots.Price != "cheap" {
		t.Errorf("new slot values not merged: %+v", intent.Slots)
	}
	if intent.FollowUpQuestion != "Indoor or terrace?" {
		t.Errorf("follow-up question lost: %q", intent.FollowUpQuestion)
	}
	if intent.Message != "Vegan it is!" {
		t.Errorf("assistant message lost: %q", intent.Message)
	}
}

func TestInterpretInformational(t *testing.T) {
	response := `{"intent":"informational","message":"Let me check.","targetPlaceName":"Joe's Diner","questionType":"openingHours"}`
	it := &Interpreter{Model: &mockModel{response: response}}
	current := models.Slots{Cuisine: "diner"}

	intent := it.Interpret(context.Background(), "what time does Joe's Diner open", current)
	if intent.Kind != models.IntentInformational {
		t.Fatalf("expected informational, got %s", intent.Kind)
	}
	if intent.TargetPlaceName != "Joe's Diner" {
		t.Errorf("target place lost: %q", intent.TargetPlaceName)
	}
	if intent.Question != models.QuestionOpeningHours {
		t.Errorf("question type lost: %q", intent.Question)
	}
	if intent.Slots.Cuisine != "diner" {
		t.Errorf("informational intent must keep slots unchanged")
	}
}

func TestInterpretUnknownQuestionTypeDefaultsToGeneral(t *testing.T) {
	response := `{"intent":"informational","targetPlaceName":"Cafe X","questionType":"parking"}`
	it := &Interpreter{Model: &mockModel{response: response}}
	intent := it.Interpret(context.Background(), "does Cafe X have parking", models.Slots{})
	if intent.Question != models.QuestionGeneral {
		t.Errorf("unknown question tag should map to general, got %q", intent.Question)
	}
}
