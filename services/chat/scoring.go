// File: services/chat/scoring.go
package chat

import (
	"math"
	"strings"

	"placemate/models"
)

// Additive rule weights. Rules apply independently, with no normalization;
// absent inputs contribute 0, so the score is never negative.
const (
	categoryWeight     = 20.0
	cuisineWeight      = 15.0
	priceWeight        = 10.0
	openNowMatchWeight = 15.0
	closedMatchWeight  = 5.0
	maxRatingBonus     = 10.0
	nearWeight         = 10.0
	defaultNearWeight  = 5.0
	defaultNearKm      = 5.0
	vibeWeight         = 10.0
)

// scorePlace computes the match score for one candidate from the slots, its
// enrichment data (nil for places without an external id), and the user's
// location. Pure and deterministic: identical inputs always produce the same
// score.
func scorePlace(place models.Place, slots models.Slots, details *models.PlaceDetails, userLocation *models.GeoPoint) float64 {
	score := 0.0

	if slots.Category != "" && categoryMatches(place, details, slots.Category) {
		score += categoryWeight
	}
	if slots.Cuisine != "" && cuisineMatches(place, details, slots.Cuisine) {
		score += cuisineWeight
	}

	if details != nil {
		if slots.Price != "" && slots.Price != "any" && details.PriceLevel != nil &&
			priceInBand(*details.PriceLevel, slots.Price) {
			score += priceWeight
		}
		if slots.OpenNow != nil && details.OpeningHours != nil && details.OpeningHours.OpenNow != nil {
			switch {
			case *slots.OpenNow && *details.OpeningHours.OpenNow:
				score += openNowMatchWeight
			case !*slots.OpenNow && !*details.OpeningHours.OpenNow:
				score += closedMatchWeight
			}
		}
		if details.Rating > 0 {
			score += math.Min(2*details.Rating, maxRatingBonus)
		}
	}

	if userLocation != nil && place.Coordinates != nil {
		distanceKm := Haversine(userLocation.Lat, userLocation.Lng,
			place.Coordinates.Lat, place.Coordinates.Lng)
		if slots.DistanceKm != nil && distanceKm <= *slots.DistanceKm {
			score += nearWeight
		} else if distanceKm <= defaultNearKm {
			score += defaultNearWeight
		}
	}

	if slots.Vibe != "" && place.Vibe != "" &&
		strings.Contains(strings.ToLower(place.Vibe), strings.ToLower(slots.Vibe)) {
		score += vibeWeight
	}

	return score
}

// categoryMatches tests the category against tags, place tags, the manual
// type, and the enriched primary-category label. Unlike the filter it never
// consults the place name: a name-only candidate survives filtering but earns
// no category points.
func categoryMatches(place models.Place, details *models.PlaceDetails, category string) bool {
	fields := append([]string{}, place.Tags...)
	fields = append(fields, place.PlaceTags...)
	fields = append(fields, place.Type)
	if details != nil {
		fields = append(fields, details.PrimaryTypeLabel)
	}
	return anyContains(fields, strings.ToLower(category))
}

func cuisineMatches(place models.Place, details *models.PlaceDetails, cuisine string) bool {
	if matchesCuisine(place, cuisine) {
		return true
	}
	if details != nil && details.PrimaryTypeLabel != "" {
		return strings.Contains(strings.ToLower(details.PrimaryTypeLabel), strings.ToLower(cuisine))
	}
	return false
}

// priceInBand applies the same two-band mapping as the filter: "cheap" means
// levels {0,1}, everything else non-"any" means {2,3}.
func priceInBand(level int, price string) bool {
	if price == "cheap" {
		return level <= 1
	}
	return level >= 2 && level <= 3
}

// Haversine calculates the great-circle distance (in km) between two lat/lng
// points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}
