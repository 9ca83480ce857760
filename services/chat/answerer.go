// File: services/chat/answerer.go
package chat

import (
	"context"
	"fmt"
	"strings"

	"placemate/models"
	"placemate/services/places"
	"placemate/utils"

	"go.uber.org/zap"
)

// resolvePlaceByName finds the saved place an informational question is
// about: first a case-insensitive exact name match, then a substring match in
// either direction. First match wins; there is no ranking among multiple
// matches.
func resolvePlaceByName(placeSet []models.Place, query string) *models.Place {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	needle := strings.ToLower(strings.TrimSpace(query))

	for i := range placeSet {
		if strings.ToLower(placeSet[i].Name) == needle {
			return &placeSet[i]
		}
	}
	for i := range placeSet {
		name := strings.ToLower(placeSet[i].Name)
		if strings.Contains(name, needle) || strings.Contains(needle, name) {
			return &placeSet[i]
		}
	}
	return nil
}

// answerInformational resolves the target place and renders a deterministic
// answer for the question type. It is a pure rendering step over the fetched
// details; no scoring or ranking happens here.
func answerInformational(ctx context.Context, provider places.DetailProvider, placeSet []models.Place, intent models.Intent) string {
	target := resolvePlaceByName(placeSet, intent.TargetPlaceName)
	if target == nil || target.ExternalID == "" {
		if intent.Message != "" {
			return intent.Message
		}
		return "I couldn't find that place in your saved lists. Which one did you mean?"
	}

	var details *models.PlaceDetails
	if provider != nil {
		var err error
		details, err = provider.FetchDetails(ctx, target.ExternalID)
		if err != nil {
			utils.GetLogger().Warn("answerer: details fetch failed",
				zap.String("placeId", target.ID), zap.Error(err))
			details = nil
		}
	}
	if details == nil {
		return fmt.Sprintf("I couldn't look up live details for %s right now, but I can include it in a recommendation list if you'd like.", target.Name)
	}

	return renderAnswer(target, details, intent.Question)
}

// renderAnswer keys a fixed template on the question type. The switch is
// exhaustive over QuestionKind.
func renderAnswer(place *models.Place, details *models.PlaceDetails, question models.QuestionKind) string {
	switch question {
	case models.QuestionOpeningHours, models.QuestionOpenNow:
		return renderHoursAnswer(place, details)
	case models.QuestionRating:
		if details.Rating <= 0 {
			return fmt.Sprintf("I don't have rating information for %s.", place.Name)
		}
		if details.RatingCount > 0 {
			return fmt.Sprintf("%s is rated %.1f out of 5, based on %d reviews.", place.Name, details.Rating, details.RatingCount)
		}
		return fmt.Sprintf("%s is rated %.1f out of 5.", place.Name, details.Rating)
	case models.QuestionAddress:
		if details.FormattedAddress != "" {
			return fmt.Sprintf("%s is at %s.", place.Name, details.FormattedAddress)
		}
		if place.Address != "" {
			return fmt.Sprintf("%s is at %s.", place.Name, place.Address)
		}
		return fmt.Sprintf("I don't have an address for %s.", place.Name)
	case models.QuestionPhone:
		if details.Phone != "" {
			return fmt.Sprintf("You can reach %s at %s.", place.Name, details.Phone)
		}
		return fmt.Sprintf("I don't have a phone number for %s.", place.Name)
	case models.QuestionWebsite:
		if details.Website != "" {
			return fmt.Sprintf("The website for %s is %s.", place.Name, details.Website)
		}
		return fmt.Sprintf("I don't have a website for %s.", place.Name)
	case models.QuestionGeneral:
		return renderGeneralAnswer(place, details)
	default:
		return renderGeneralAnswer(place, details)
	}
}

func renderHoursAnswer(place *models.Place, details *models.PlaceDetails) string {
	var sb strings.Builder
	if details.OpeningHours != nil && details.OpeningHours.OpenNow != nil {
		if *details.OpeningHours.OpenNow {
			sb.WriteString(fmt.Sprintf("%s is open right now.", place.Name))
		} else {
			sb.WriteString(fmt.Sprintf("%s is closed right now.", place.Name))
		}
	} else {
		sb.WriteString(fmt.Sprintf("I don't know whether %s is open right now.", place.Name))
	}
	if details.OpeningHours != nil && len(details.OpeningHours.WeekdayText) > 0 {
		for i, line := range details.OpeningHours.WeekdayText {
			if i >= 7 {
				break
			}
			sb.WriteString("\n")
			sb.WriteString(line)
		}
	}
	return sb.String()
}

// renderGeneralAnswer concatenates whichever summary fields are present and
// omits absent ones entirely.
func renderGeneralAnswer(place *models.Place, details *models.PlaceDetails) string {
	lines := []string{fmt.Sprintf("Here's what I know about %s:", place.Name)}

	if details.FormattedAddress != "" {
		lines = append(lines, "Address: "+details.FormattedAddress)
	} else if place.Address != "" {
		lines = append(lines, "Address: "+place.Address)
	}
	if details.Rating > 0 {
		if details.RatingCount > 0 {
			lines = append(lines, fmt.Sprintf("Rating: %.1f/5 (%d reviews)", details.Rating, details.RatingCount))
		} else {
			lines = append(lines, fmt.Sprintf("Rating: %.1f/5", details.Rating))
		}
	}
	if details.OpeningHours != nil && details.OpeningHours.OpenNow != nil {
		if *details.OpeningHours.OpenNow {
			lines = append(lines, "Currently open")
		} else {
			lines = append(lines, "Currently closed")
		}
	}
	if details.Phone != "" {
		lines = append(lines, "Phone: "+details.Phone)
	}
	if details.Website != "" {
		lines = append(lines, "Website: "+details.Website)
	}
	return strings.Join(lines, "\n")
}
