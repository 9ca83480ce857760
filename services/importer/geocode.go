// File: services/importer/geocode.go
package importer

import (
	"context"
	"regexp"
	"strconv"
	"time"

	placeRepo "placemate/database/repository/place"
	"placemate/models"
	"placemate/services/places"
	"placemate/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// URL coordinate forms seen in saved-place exports, tried in order.
var (
	atPattern    = regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`)
	dataPattern  = regexp.MustCompile(`!3d(-?\d+\.\d+)!4d(-?\d+\.\d+)`)
	queryPattern = regexp.MustCompile(`[?&]q=(-?\d+\.\d+),(-?\d+\.\d+)`)

	placeIDPattern = regexp.MustCompile(`[?&]place_id[=:]([A-Za-z0-9_-]{10,})`)
	ftidPattern    = regexp.MustCompile(`!1s(0x[0-9a-f]+:0x[0-9a-f]+)`)
)

// ExtractCoordinates pulls a lat/lng pair out of a maps URL, when the export
// embedded one. Returns nil when no known form matches.
func ExtractCoordinates(url string) *models.GeoPoint {
	if url == "" {
		return nil
	}
	for _, pattern := range []*regexp.Regexp{atPattern, dataPattern, queryPattern} {
		m := pattern.FindStringSubmatch(url)
		if m == nil {
			continue
		}
		lat, err1 := strconv.ParseFloat(m[1], 64)
		lng, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			continue
		}
		return &models.GeoPoint{Lat: lat, Lng: lng}
	}
	return nil
}

// ExtractExternalID pulls an external place identifier out of a maps URL.
// Returns "" when the URL carries none.
func ExtractExternalID(url string) string {
	if url == "" {
		return ""
	}
	if m := placeIDPattern.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	if m := ftidPattern.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

const (
	resolveBatchSize = 20
	// One geocoding call every 200ms keeps well under the third-party quota.
	resolveInterval = 200 * time.Millisecond
	batchPause      = 2 * time.Second
)

// ResolveMissingCoordinates walks places without coordinates in batches of
// resolveBatchSize, geocoding each by name and address. Calls run sequentially
// under the limiter to stay within the geocoder's rate limit. Returns the
// number of places resolved.
func ResolveMissingCoordinates(ctx context.Context, repo placeRepo.PlaceRepository, geocoder places.Geocoder) (int, error) {
	limiter := rate.NewLimiter(rate.Every(resolveInterval), 1)
	resolved := 0

	for {
		batch, err := repo.MissingCoordinates(resolveBatchSize)
		if err != nil {
			return resolved, err
		}
		if len(batch) == 0 {
			return resolved, nil
		}

		progress := false
		for _, p := range batch {
			if err := limiter.Wait(ctx); err != nil {
				return resolved, err
			}

			query := p.Name
			if p.Address != "" {
				query += ", " + p.Address
			}
			geo, err := geocoder.Geocode(ctx, query)
			if err != nil {
				utils.GetLogger().Warn("geocode failed",
					zap.String("placeId", p.ID), zap.Error(err))
				continue
			}
			if geo == nil {
				continue
			}
			if err := repo.UpdateCoordinates(p.ID, *geo); err != nil {
				utils.GetLogger().Warn("failed to store coordinates",
					zap.String("placeId", p.ID), zap.Error(err))
				continue
			}
			resolved++
			progress = true
		}

		// Nothing in this batch resolved: the same places would come back
		// forever, so stop instead of spinning on the quota.
		if !progress {
			return resolved, nil
		}

		select {
		case <-ctx.Done():
			return resolved, ctx.Err()
		case <-time.After(batchPause):
		}
	}
}
