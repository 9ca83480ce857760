// File: services/chat/enrich.go
package chat

import (
	"context"

	"placemate/models"
	"placemate/services/places"
	"placemate/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// Enrichment calls are the most expensive and rate-limited step, so the
	// identifier-bearing group is capped along with its in-flight concurrency.
	maxEnrichable   = 20
	maxUnenrichable = 10
)

// fanOut runs fn for indexes [0,n) concurrently with at most limit calls in
// flight, waiting for all of them. fn owns its own failure handling; fanOut
// never aborts the batch.
func fanOut(ctx context.Context, n, limit int, fn func(ctx context.Context, i int)) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(ctx, i)
			return nil
		})
	}
	g.Wait()
}

// enrichCandidates selects a bounded subset of the filtered candidates to
// enrich through the detail provider: the first maxEnrichable places with an
// external id are fetched concurrently, the first maxUnenrichable without one
// pass through with nil details. A failed fetch degrades that one candidate
// to unenriched; it never aborts the batch.
func enrichCandidates(ctx context.Context, provider places.DetailProvider, candidates []models.Place) []models.ScoredCandidate {
	var withID, withoutID []models.Place
	for _, p := range candidates {
		if p.ExternalID != "" {
			if len(withID) < maxEnrichable {
				withID = append(withID, p)
			}
		} else if len(withoutID) < maxUnenrichable {
			withoutID = append(withoutID, p)
		}
	}

	enriched := make([]models.ScoredCandidate, len(withID))
	if provider == nil {
		// Provider unavailable for this process lifetime: everything scores
		// on place-only signals.
		for i, p := range withID {
			enriched[i] = models.ScoredCandidate{Place: p}
		}
		for _, p := range withoutID {
			enriched = append(enriched, models.ScoredCandidate{Place: p})
		}
		return enriched
	}

	fanOut(ctx, len(withID), maxEnrichable, func(ctx context.Context, i int) {
		place := withID[i]
		details, err := provider.FetchDetails(ctx, place.ExternalID)
		if err != nil {
			utils.GetLogger().Warn("enrichment fetch failed",
				zap.String("placeId", place.ID), zap.Error(err))
			details = nil
		}
		enriched[i] = models.ScoredCandidate{Place: place, Details: details}
	})

	for _, p := range withoutID {
		enriched = append(enriched, models.ScoredCandidate{Place: p})
	}
	return enriched
}
