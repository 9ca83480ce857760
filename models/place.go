package models

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Place is a saved place imported from a user's list export.
// Coordinates stay nil until resolved from the source URL or the geocoder.
// ExternalID links the place to live detail data when the export carried one.
type Place struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Coordinates *GeoPoint `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	Address     string    `bson:"address,omitempty" json:"address,omitempty"`
	ListName    string    `bson:"listName" json:"listName"`
	Tags        []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	PlaceTags   []string  `bson:"placeTags,omitempty" json:"placeTags,omitempty"`
	Notes       string    `bson:"notes,omitempty" json:"notes,omitempty"`
	ExternalID  string    `bson:"externalId,omitempty" json:"externalId,omitempty"`
	SourceURL   string    `bson:"sourceUrl,omitempty" json:"sourceUrl,omitempty"`

	// Legacy/manual fields kept from older exports, independent of enrichment.
	Type       string `bson:"type,omitempty" json:"type,omitempty"`
	Vibe       string `bson:"vibe,omitempty" json:"vibe,omitempty"`
	PriceLevel *int   `bson:"priceLevel,omitempty" json:"priceLevel,omitempty"`
}
