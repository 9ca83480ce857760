package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"placemate/models"
)

// mockDetailProvider counts calls and can fail for chosen external ids.
type mockDetailProvider struct {
	mu      sync.Mutex
	calls   int
	failFor map[string]bool
	details map[string]*models.PlaceDetails
}

func (m *mockDetailProvider) FetchDetails(ctx context.Context, externalID string) (*models.PlaceDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.failFor[externalID] {
		return nil, errors.New("quota exceeded")
	}
	if d, ok := m.details[externalID]; ok {
		return d, nil
	}
	return &models.PlaceDetails{Name: externalID}, nil
}

func (m *mockDetailProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestEnrichCandidatesBounds(t *testing.T) {
	var candidates []models.Place
	for i := 0; i < 40; i++ {
		candidates = append(candidates, models.Place{
			ID:         fmt.Sprintf("with%02d", i),
			ExternalID: fmt.Sprintf("ext%02d", i),
		})
	}
	for i := 0; i < 15; i++ {
		candidates = append(candidates, models.Place{ID: fmt.Sprintf("without%02d", i)})
	}

	provider := &mockDetailProvider{}
	pool := enrichCandidates(context.Background(), provider, candidates)

	if len(pool) != maxEnrichable+maxUnenrichable {
		t.Fatalf("expected %d candidates, got %d", maxEnrichable+maxUnenrichable, len(pool))
	}
	if provider.callCount() != maxEnrichable {
		t.Errorf("expected %d provider calls, got %d", maxEnrichable, provider.callCount())
	}

	enriched, unenriched := 0, 0
	for _, c := range pool {
		if c.Details != nil {
			enriched++
		} else {
			unenriched++
		}
	}
	if enriched != maxEnrichable {
		t.Errorf("expected %d enriched candidates, got %d", maxEnrichable, enriched)
	}
	if unenriched != maxUnenrichable {
		t.Errorf("expected %d unenriched candidates, got %d", maxUnenrichable, unenriched)
	}
}

func TestEnrichCandidatesFailureDegradesOneCandidate(t *testing.T) {
	candidates := []models.Place{
		{ID: "ok", ExternalID: "ext-ok"},
		{ID: "bad", ExternalID: "ext-bad"},
	}
	provider := &mockDetailProvider{failFor: map[string]bool{"ext-bad": true}}

	pool := enrichCandidates(context.Background(), provider, candidates)
	if len(pool) != 2 {
		t.Fatalf("a failed fetch must not shrink the pool: got %d", len(pool))
	}

	byID := map[string]models.ScoredCandidate{}
	for _, c := range pool {
		byID[c.Place.ID] = c
	}
	if byID["ok"].Details == nil {
		t.Error("healthy candidate lost its details")
	}
	if byID["bad"].Details != nil {
		t.Error("failed candidate should degrade to nil details")
	}
}

func TestEnrichCandidatesWithoutIDNeverFetched(t *testing.T) {
	candidates := []models.Place{{ID: "plain"}}
	provider := &mockDetailProvider{}

	pool := enrichCandidates(context.Background(), provider, candidates)
	if provider.callCount() != 0 {
		t.Errorf("candidates without an external id must not be fetched")
	}
	if len(pool) != 1 || pool[0].Details != nil {
		t.Errorf("candidate without id must pass through with nil details")
	}
}

func TestEnrichCandidatesNilProvider(t *testing.T) {
	candidates := []models.Place{
		{ID: "a", ExternalID: "ext-a"},
		{ID: "b"},
	}
	pool := enrichCandidates(context.Background(), nil, candidates)
	if len(pool) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(pool))
	}
	for _, c := range pool {
		if c.Details != nil {
			t.Errorf("nil provider must leave %s unenriched", c.Place.ID)
		}
	}
}
