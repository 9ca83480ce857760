package places

import (
	"context"

	"placemate/models"
)

// DetailProvider fetches live third-party details for one place. FetchDetails
// returns (nil, nil) when the external id is unknown to the provider, and an
// error only on transport or quota failure.
type DetailProvider interface {
	FetchDetails(ctx context.Context, externalID string) (*models.PlaceDetails, error)
}

// Geocoder resolves a free-text query to coordinates. Returns (nil, nil) when
// the query produced no result.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*models.GeoPoint, error)
}
