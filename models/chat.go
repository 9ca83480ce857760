package models

// Slots are the accumulated search criteria of one conversation. Unset
// dimensions stay zero-valued and contribute nothing to filtering or scoring.
type Slots struct {
	Category   string   `json:"category,omitempty"`
	Cuisine    string   `json:"cuisine,omitempty"`
	Price      string   `json:"price,omitempty"` // "cheap", "mid", or "any"
	Vibe       string   `json:"vibe,omitempty"`
	OpenNow    *bool    `json:"openNow,omitempty"`
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

// Merge overlays the non-empty dimensions of other onto s and returns the
// result. Dimensions other has no new information for keep their value.
func (s Slots) Merge(other Slots) Slots {
	if other.Category != "" {
		s.Category = other.Category
	}
	if other.Cuisine != "" {
		s.Cuisine = other.Cuisine
	}
	if other.Price != "" {
		s.Price = other.Price
	}
	if other.Vibe != "" {
		s.Vibe = other.Vibe
	}
	if other.OpenNow != nil {
		s.OpenNow = other.OpenNow
	}
	if other.DistanceKm != nil {
		s.DistanceKm = other.DistanceKm
	}
	return s
}

// IsEmpty reports whether no dimension has been set yet.
func (s Slots) IsEmpty() bool {
	return s.Category == "" && s.Cuisine == "" && s.Price == "" &&
		s.Vibe == "" && s.OpenNow == nil && s.DistanceKm == nil
}

// IntentKind classifies the purpose of one user message.
type IntentKind string

const (
	IntentInformational  IntentKind = "informational"
	IntentRecommendation IntentKind = "recommendation"
)

// QuestionKind is the closed set of informational question types.
type QuestionKind string

const (
	QuestionOpeningHours QuestionKind = "openingHours"
	QuestionOpenNow      QuestionKind = "openNow"
	QuestionRating       QuestionKind = "rating"
	QuestionAddress      QuestionKind = "address"
	QuestionPhone        QuestionKind = "phone"
	QuestionWebsite      QuestionKind = "website"
	QuestionGeneral      QuestionKind = "general"
)

// ParseQuestionKind maps a free-form tag onto the closed set, defaulting to
// QuestionGeneral for anything unrecognized.
func ParseQuestionKind(tag string) QuestionKind {
	switch QuestionKind(tag) {
	case QuestionOpeningHours, QuestionOpenNow, QuestionRating,
		QuestionAddress, QuestionPhone, QuestionWebsite, QuestionGeneral:
		return QuestionKind(tag)
	default:
		return QuestionGeneral
	}
}

// Intent is the interpreted result of one message. Transient, never persisted.
type Intent struct {
	Kind             IntentKind
	Message          string // assistant-facing reply text from the interpreter
	TargetPlaceName  string // informational only, may be empty if unclear
	Question         QuestionKind
	Slots            Slots  // recommendation only: merged slot state
	FollowUpQuestion string // at most one, may be empty
}

// ScoredCandidate is one place under consideration in a recommendation turn.
// Details stays nil for places without an external id.
type ScoredCandidate struct {
	Place   Place
	Details *PlaceDetails
	Score   float64
}

// ChatContext travels with every chat message.
type ChatContext struct {
	SessionID    string    `json:"sessionId"`
	ListName     string    `json:"listName,omitempty"`
	UserLocation *GeoPoint `json:"userLocation,omitempty"`
	Slots        *Slots    `json:"slots,omitempty"`
}

// ChatRequest is the payload coming into POST /api/chat.
type ChatRequest struct {
	Message string      `json:"message"`
	Context ChatContext `json:"context"`
}

// ResultRecord is one recommended place in a chat response.
type ResultRecord struct {
	ID            string    `json:"id"`
	ExternalID    string    `json:"externalId,omitempty"`
	Name          string    `json:"name"`
	Address       string    `json:"address,omitempty"`
	Rating        float64   `json:"rating,omitempty"`
	RatingCount   int       `json:"ratingCount,omitempty"`
	PriceLevel    *int      `json:"priceLevel,omitempty"`
	Category      string    `json:"category,omitempty"`
	CategoryLabel string    `json:"categoryLabel,omitempty"`
	Types         []string  `json:"types,omitempty"`
	OpenNow       *bool     `json:"openNow,omitempty"`
	WeekdayText   string    `json:"weekdayText,omitempty"`
	ReviewSummary string    `json:"reviewSummary,omitempty"`
	Explanation   string    `json:"explanation,omitempty"`
	Score         float64   `json:"score"`
	Coordinates   *GeoPoint `json:"coordinates,omitempty"`
}

// ChatResponse is what the chat entry point returns to the frontend.
type ChatResponse struct {
	AssistantMessage string         `json:"assistantMessage"`
	Mode             string         `json:"mode"` // "chat", "informational", or "recommendation"
	UpdatedSlots     Slots          `json:"updatedSlots"`
	Results          []ResultRecord `json:"results"`
	OptionalQuestion string         `json:"optionalQuestion,omitempty"`
	Failed           bool           `json:"failed,omitempty"`
}
