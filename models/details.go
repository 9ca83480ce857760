package models

// OpeningPeriod is one raw open/close window as reported by the detail
// provider. Day is 0 (Sunday) through 6; times are "HHMM" strings.
type OpeningPeriod struct {
	Day       int    `json:"day"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// OpeningHours carries both the human weekday text and the raw periods
// needed for time-window math.
type OpeningHours struct {
	WeekdayText []string        `json:"weekdayText,omitempty"`
	OpenNow     *bool           `json:"openNow,omitempty"`
	Periods     []OpeningPeriod `json:"periods,omitempty"`
}

// Review is one review excerpt attached to enriched place details.
type Review struct {
	Author       string  `json:"author"`
	Rating       float64 `json:"rating"`
	Text         string  `json:"text"`
	RelativeTime string  `json:"relativeTime,omitempty"`
}

// PlaceDetails is live third-party data fetched per request for one place.
// It is transient: the core never caches it across sessions.
type PlaceDetails struct {
	Name             string        `json:"name"`
	FormattedAddress string        `json:"formattedAddress,omitempty"`
	Rating           float64       `json:"rating,omitempty"`
	RatingCount      int           `json:"ratingCount,omitempty"`
	PriceLevel       *int          `json:"priceLevel,omitempty"`
	PrimaryType      string        `json:"primaryType,omitempty"`
	PrimaryTypeLabel string        `json:"primaryTypeLabel,omitempty"`
	Types            []string      `json:"types,omitempty"`
	OpeningHours     *OpeningHours `json:"openingHours,omitempty"`
	Phone            string        `json:"phone,omitempty"`
	Website          string        `json:"website,omitempty"`
	EditorialSummary string        `json:"editorialSummary,omitempty"`
	Reviews          []Review      `json:"reviews,omitempty"`
}
