package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"placemate/models"
)

func candidatesForExplanation(n int) []models.ScoredCandidate {
	out := make([]models.ScoredCandidate, n)
	for i := range out {
		out[i] = models.ScoredCandidate{
			Place: models.Place{ID: string(rune('a' + i)), Name: "Place"},
			Details: &models.PlaceDetails{
				PrimaryTypeLabel: "cafe",
				Rating:           4.5,
			},
		}
	}
	return out
}

func TestGenerateExplanationsNilModel(t *testing.T) {
	got := generateExplanations(context.Background(), nil, candidatesForExplanation(2), models.Slots{})
	if len(got) != 2 {
		t.Fatalf("expected 2 explanations, got %d", len(got))
	}
	for _, e := range got {
		if e != "Great cafe with 4.5★ rating" {
			t.Errorf("unexpected fallback text %q", e)
		}
	}
}

func TestGenerateExplanationsFromProvider(t *testing.T) {
	model := &mockModel{response: `["Cozy spot for coffee","Best croissants in town"]`}
	got := generateExplanations(context.Background(), model, candidatesForExplanation(2), models.Slots{})
	if len(got) != 2 {
		t.Fatalf("expected 2 explanations, got %d", len(got))
	}
	if got[0] != "Cozy spot for coffee" || got[1] != "Best croissants in town" {
		t.Errorf("provider explanations not used: %v", got)
	}
	if model.calls.Load() != 1 {
		t.Errorf("expected one batched call, got %d", model.calls.Load())
	}
}

func TestGenerateExplanationsLengthMismatchAllFallback(t *testing.T) {
	model := &mockModel{response: `["only one"]`}
	got := generateExplanations(context.Background(), model, candidatesForExplanation(3), models.Slots{})
	if len(got) != 3 {
		t.Fatalf("expected 3 explanations, got %d", len(got))
	}
	for _, e := range got {
		if e == "only one" {
			t.Errorf("partial provider output must not be merged with fallbacks")
		}
	}
}

func TestGenerateExplanationsProviderErrorFallsBack(t *testing.T) {
	model := &mockModel{err: errors.New("quota")}
	got := generateExplanations(context.Background(), model, candidatesForExplanation(1), models.Slots{})
	if len(got) != 1 || !strings.HasPrefix(got[0], "Great ") {
		t.Errorf("expected fallback explanation, got %v", got)
	}
}

func TestGenerateExplanationsTruncatesLong(t *testing.T) {
	long := strings.Repeat("x", 200)
	model := &mockModel{response: `["` + long + `"]`}
	got := generateExplanations(context.Background(), model, candidatesForExplanation(1), models.Slots{})
	if len(got[0]) != maxExplanationLen {
		t.Errorf("expected truncation to %d chars, got %d", maxExplanationLen, len(got[0]))
	}
}

func TestGenerateExplanationsTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 120)
	model := &mockModel{response: `["` + long + `"]`}
	got := generateExplanations(context.Background(), model, candidatesForExplanation(1), models.Slots{})
	if n := utf8.RuneCountInString(got[0]); n != maxExplanationLen {
		t.Errorf("expected %d characters, got %d", maxExplanationLen, n)
	}
	if !utf8.ValidString(got[0]) {
		t.Errorf("truncated explanation is not valid UTF-8: %q", got[0])
	}
}

func TestFallbackExplanationWithoutDetails(t *testing.T) {
	candidates := []models.ScoredCandidate{{Place: models.Place{Name: "Mystery Bar"}}}
	got := fallbackExplanations(candidates)
	if got[0] != "Great place with good reviews" {
		t.Errorf("unexpected no-details fallback %q", got[0])
	}
}

func TestGenerateExplanationsEmptyInput(t *testing.T) {
	if got := generateExplanations(context.Background(), &mockModel{}, nil, models.Slots{}); got != nil {
		t.Errorf("expected nil for no candidates, got %v", got)
	}
}
