// File: services/chat/prompts.go
package chat

import (
	"encoding/json"
	"fmt"
	"strings"

	"placemate/models"
)

// buildInterpreterPrompt assembles the instruction set that forces the model
// into a binary intent choice and a strict JSON reply.
func buildInterpreterPrompt(message string, slots models.Slots) string {
	slotsJSON, _ := json.Marshal(slots)

	var sb strings.Builder
	sb.WriteString("You help users explore their saved places. Classify the user's message.\n\n")
	sb.WriteString("Choose exactly one intent:\n")
	sb.WriteString("- \"informational\": a question about one specific named place ")
	sb.WriteString("(opening hours, whether it is open now, rating, address, phone, website, or a general summary).\n")
	sb.WriteString("- \"recommendation\": an open-ended search or browse request.\n\n")
	sb.WriteString("Current search criteria (JSON): ")
	sb.Write(slotsJSON)
	sb.WriteString("\n\nRespond with ONLY a JSON object of this shape:\n")
	sb.WriteString(`{
  "intent": "informational" | "recommendation",
  "message": "<short assistant reply to the user>",
  "targetPlaceName": "<best-guess place name, or null if unclear>",
  "questionType": "openingHours" | "openNow" | "rating" | "address" | "phone" | "website" | "general",
  "slots": {"category": "...", "cuisine": "...", "price": "cheap"|"mid"|"any", "vibe": "...", "openNow": true|false, "distanceKm": <number>},
  "followUpQuestion": "<one optional clarifying question, or null>"
}`)
	sb.WriteString("\n\nRules:\n")
	sb.WriteString("- For recommendation intent, only include slot fields you have NEW information for; never invent values.\n")
	sb.WriteString("- Include at most ONE followUpQuestion, and only when it would genuinely help.\n")
	sb.WriteString("- targetPlaceName and questionType only apply to informational intent.\n\n")
	sb.WriteString("User message: ")
	sb.WriteString(message)
	return sb.String()
}

// buildExplanationPrompt enumerates the ranked candidates and asks for one
// short explanation line per place, as a JSON array in input order.
func buildExplanationPrompt(candidates []models.ScoredCandidate, slots models.Slots) string {
	slotsJSON, _ := json.Marshal(slots)

	var sb strings.Builder
	sb.WriteString("The user searched their saved places with these criteria (JSON): ")
	sb.Write(slotsJSON)
	sb.WriteString("\n\nTop matches, in order:\n")
	for i, c := range candidates {
		sb.WriteString(fmt.Sprintf("%d. %s", i+1, c.Place.Name))
		if c.Details != nil {
			if c.Details.PrimaryTypeLabel != "" {
				sb.WriteString(" | " + c.Details.PrimaryTypeLabel)
			}
			if c.Details.Rating > 0 {
				sb.WriteString(fmt.Sprintf(" | %.1f stars (%d reviews)", c.Details.Rating, c.Details.RatingCount))
			}
			if c.Details.PriceLevel != nil {
				sb.WriteString(" | " + strings.Repeat("$", *c.Details.PriceLevel+1))
			}
			if c.Details.OpeningHours != nil && c.Details.OpeningHours.OpenNow != nil {
				if *c.Details.OpeningHours.OpenNow {
					sb.WriteString(" | open now")
				} else {
					sb.WriteString(" | closed now")
				}
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf(
		"\nWrite one short reason (max 80 characters) why each place fits the criteria. "+
			"Respond with ONLY a JSON array of exactly %d strings, one per place, in the same order.",
		len(candidates)))
	return sb.String()
}
