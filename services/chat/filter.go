// File: services/chat/filter.go
package chat

import (
	"strings"

	"placemate/models"
)

// maxCandidates bounds the pool handed to the enrichment gate.
const maxCandidates = 50

// filterCandidates narrows the saved-place set using soft rules derived from
// the slots: category, cuisine, then price band. It keeps original order,
// caps the result at maxCandidates, and treats an empty result as "no
// matches", never an error. Exclusion stays coarse on purpose; fine ranking
// belongs to the scorer.
func filterCandidates(places []models.Place, slots models.Slots) []models.Place {
	return FilterPlaces(places, slots, maxCandidates)
}

// FilterPlaces applies the candidate-filter rules with a caller-chosen cap;
// limit <= 0 means unbounded. The structured browse endpoint shares these
// rules with the chat pipeline.
func FilterPlaces(places []models.Place, slots models.Slots, limit int) []models.Place {
	out := make([]models.Place, 0, len(places))
	for _, p := range places {
		if slots.Category != "" && !matchesCategory(p, slots.Category) {
			continue
		}
		if slots.Cuisine != "" && !matchesCuisine(p, slots.Cuisine) {
			continue
		}
		if !matchesPriceBand(p.PriceLevel, slots.Price) {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// matchesCategory tests the category string as a case-folded substring of any
// of the place's tags, place tags, type, or name.
func matchesCategory(p models.Place, category string) bool {
	needle := strings.ToLower(category)
	fields := append([]string{}, p.Tags...)
	fields = append(fields, p.PlaceTags...)
	fields = append(fields, p.Type, p.Name)
	return anyContains(fields, needle)
}

// matchesCuisine is the same substring test over tags, place tags, name, and
// free-text notes.
func matchesCuisine(p models.Place, cuisine string) bool {
	needle := strings.ToLower(cuisine)
	fields := append([]string{}, p.Tags...)
	fields = append(fields, p.PlaceTags...)
	fields = append(fields, p.Name, p.Notes)
	return anyContains(fields, needle)
}

// matchesPriceBand maps "cheap" to levels {0,1} and any other non-"any" value
// to {2,3}. Places with unknown price level always pass; missing data never
// excludes.
func matchesPriceBand(level *int, price string) bool {
	if price == "" || price == "any" || level == nil {
		return true
	}
	if price == "cheap" {
		return *level <= 1
	}
	return *level >= 2 && *level <= 3
}

func anyContains(fields []string, needle string) bool {
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
