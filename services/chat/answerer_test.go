package chat

import (
	"context"
	"strings"
	"testing"

	"placemate/models"
)

// failingDetailProvider always errors.
type failingDetailProvider struct{}

func (failingDetailProvider) FetchDetails(ctx context.Context, externalID string) (*models.PlaceDetails, error) {
	return nil, context.DeadlineExceeded
}

func TestResolvePlaceByName(t *testing.T) {
	placeSet := []models.Place{
		{ID: "1", Name: "Cafe Olimpico"},
		{ID: "2", Name: "Olimpico"},
		{ID: "3", Name: "Schwartz's Deli"},
	}

	t.Run("exact match wins over substring", func(t *testing.T) {
		got := resolvePlaceByName(placeSet, "olimpico")
		if got == nil || got.ID != "2" {
			t.Fatalf("expected exact match id 2, got %+v", got)
		}
	})

	t.Run("query contained in name", func(t *testing.T) {
		got := resolvePlaceByName(placeSet, "schwartz")
		if got == nil || got.ID != "3" {
			t.Fatalf("expected id 3, got %+v", got)
		}
	})

	t.Run("name contained in query", func(t *testing.T) {
		got := resolvePlaceByName(placeSet, "that cafe olimpico place")
		if got == nil || got.ID != "1" {
			t.Fatalf("expected id 1, got %+v", got)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if got := resolvePlaceByName(placeSet, "poutineville"); got != nil {
			t.Fatalf("expected nil, got %+v", got)
		}
	})

	t.Run("blank query", func(t *testing.T) {
		if got := resolvePlaceByName(placeSet, "   "); got != nil {
			t.Fatalf("expected nil for blank query, got %+v", got)
		}
	})
}

func TestAnswerInformationalUnresolvedTarget(t *testing.T) {
	placeSet := []models.Place{{ID: "1", Name: "Cafe Olimpico", ExternalID: "ext-1"}}

	intent := models.Intent{
		Kind:            models.IntentInformational,
		TargetPlaceName: "nowhere",
		Message:         "Which place do you mean?",
	}
	got := answerInformational(context.Background(), &mockDetailProvider{}, placeSet, intent)
	if got != "Which place do you mean?" {
		t.Errorf("interpreter clarification should be preferred, got %q", got)
	}

	intent.Message = ""
	got = answerInformational(context.Background(), &mockDetailProvider{}, placeSet, intent)
	if !strings.Contains(got, "couldn't find") {
		t.Errorf("expected generic clarification, got %q", got)
	}
}

func TestAnswerInformationalNoExternalID(t *testing.T) {
	placeSet := []models.Place{{ID: "1", Name: "Hidden Gem"}}
	provider := &mockDetailProvider{}

	got := answerInformational(context.Background(), provider, placeSet, models.Intent{
		Kind:            models.IntentInformational,
		TargetPlaceName: "Hidden Gem",
	})
	if !strings.Contains(got, "couldn't find") {
		t.Errorf("place without external id should read as unresolvable, got %q", got)
	}
	if provider.callCount() != 0 {
		t.Errorf("provider must not be called without an external id")
	}
}

func TestAnswerInformationalFetchFailure(t *testing.T) {
	placeSet := []models.Place{{ID: "1", Name: "Cafe Olimpico", ExternalID: "ext-1"}}
	got := answerInformational(context.Background(), failingDetailProvider{}, placeSet, models.Intent{
		Kind:            models.IntentInformational,
		TargetPlaceName: "Cafe Olimpico",
		Question:        models.QuestionRating,
	})
	if !strings.Contains(got, "couldn't look up live details for Cafe Olimpico") {
		t.Errorf("expected graceful degradation, got %q", got)
	}
}

func TestRenderAnswerTemplates(t *testing.T) {
	place := &models.Place{Name: "Cafe Olimpico", Address: "124 Rue Saint-Viateur"}
	open := true
	details := &models.PlaceDetails{
		FormattedAddress: "124 Rue Saint-Viateur O, Montreal",
		Rating:           4.6,
		RatingCount:      3100,
		Phone:            "+1 514-495-0746",
		Website:          "https://cafeolimpico.com",
		OpeningHours: &models.OpeningHours{
			OpenNow:     &open,
			WeekdayText: []string{"Monday: 7AM-9PM", "Tuesday: 7AM-9PM"},
		},
	}

	tests := []struct {
		question models.QuestionKind
		want     []string
	}{
		{models.QuestionRating, []string{"4.6 out of 5", "3100 reviews"}},
		{models.QuestionAddress, []string{"124 Rue Saint-Viateur O, Montreal"}},
		{models.QuestionPhone, []string{"+1 514-495-0746"}},
		{models.QuestionWebsite, []string{"https://cafeolimpico.com"}},
		{models.QuestionOpenNow, []string{"open right now", "Monday: 7AM-9PM"}},
		{models.QuestionOpeningHours, []string{"Monday: 7AM-9PM", "Tuesday: 7AM-9PM"}},
		{models.QuestionGeneral, []string{"Address:", "Rating: 4.6/5 (3100 reviews)", "Currently open", "Phone:", "Website:"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.question), func(t *testing.T) {
			got := renderAnswer(place, details, tt.question)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("answer for %s missing %q:\n%s", tt.question, want, got)
				}
			}
		})
	}
}

func TestRenderAnswerMissingFields(t *testing.T) {
	place := &models.Place{Name: "Hole in the Wall"}
	details := &models.PlaceDetails{}

	if got := renderAnswer(place, details, models.QuestionRating); !strings.Contains(got, "don't have rating") {
		t.Errorf("unexpected rating answer %q", got)
	}
	if got := renderAnswer(place, details, models.QuestionPhone); !strings.Contains(got, "don't have a phone number") {
		t.Errorf("unexpected phone answer %q", got)
	}
	if got := renderAnswer(place, details, models.QuestionOpenNow); !strings.Contains(got, "don't know whether") {
		t.Errorf("unexpected open-now answer %q", got)
	}

	general := renderAnswer(place, details, models.QuestionGeneral)
	if strings.Contains(general, "Address:") || strings.Contains(general, "Rating:") {
		t.Errorf("general answer must omit absent fields:\n%s", general)
	}
}

func TestRenderHoursAnswerCapsWeekdayLines(t *testing.T) {
	place := &models.Place{Name: "All Week"}
	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, "Day: 9AM-5PM")
	}
	details := &models.PlaceDetails{OpeningHours: &models.OpeningHours{WeekdayText: lines}}

	got := renderHoursAnswer(place, details)
	if n := strings.Count(got, "Day: 9AM-5PM"); n != 7 {
		t.Errorf("expected 7 weekday lines, got %d", n)
	}
}

func TestAnswerInformationalAddressFallsBackToSaved(t *testing.T) {
	place := &models.Place{Name: "Cafe Olimpico", Address: "124 Rue Saint-Viateur"}
	got := renderAnswer(place, &models.PlaceDetails{}, models.QuestionAddress)
	if !strings.Contains(got, "124 Rue Saint-Viateur") {
		t.Errorf("expected saved address fallback, got %q", got)
	}
}
