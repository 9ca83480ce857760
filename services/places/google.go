package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"placemate/models"
)

const (
	detailsEndpoint = "https://maps.googleapis.com/maps/api/place/details/json"
	geocodeEndpoint = "https://maps.googleapis.com/maps/api/geocode/json"
)

// Package-level HTTP client for Google web service calls.
var googleHTTPClient = &http.Client{Timeout: 8 * time.Second}

// GooglePlacesProvider implements DetailProvider and Geocoder against the
// Google Places and Geocoding web services.
type GooglePlacesProvider struct {
	apiKey string
}

// NewGooglePlacesProvider creates a provider client. An empty API key is
// allowed; every call then reports the provider as unavailable.
func NewGooglePlacesProvider(apiKey string) *GooglePlacesProvider {
	return &GooglePlacesProvider{apiKey: apiKey}
}

// Available reports whether a credential was configured at startup.
func (g *GooglePlacesProvider) Available() bool {
	return g.apiKey != ""
}

// detailsResult mirrors the fields of the Places Details response we consume.
type detailsResult struct {
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	PriceLevel       *int     `json:"price_level"`
	Types            []string `json:"types"`
	Phone            string   `json:"formatted_phone_number"`
	Website          string   `json:"website"`
	OpeningHours     *struct {
		OpenNow     *bool    `json:"open_now"`
		WeekdayText []string `json:"weekday_text"`
		Periods     []struct {
			Open struct {
				Day  int    `json:"day"`
				Time string `json:"time"`
			} `json:"open"`
			Close struct {
				Day  int    `json:"day"`
				Time string `json:"time"`
			} `json:"close"`
		} `json:"periods"`
	} `json:"opening_hours"`
	EditorialSummary struct {
		Overview string `json:"overview"`
	} `json:"editorial_summary"`
	Reviews []struct {
		AuthorName              string  `json:"author_name"`
		Rating                  float64 `json:"rating"`
		Text                    string  `json:"text"`
		RelativeTimeDescription string  `json:"relative_time_description"`
	} `json:"reviews"`
}

type detailsResponse struct {
	Status string        `json:"status"`
	Result detailsResult `json:"result"`
}

// FetchDetails retrieves live details for one external place id.
func (g *GooglePlacesProvider) FetchDetails(ctx context.Context, externalID string) (*models.PlaceDetails, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("place details provider is not configured")
	}

	params := url.Values{}
	params.Set("place_id", externalID)
	params.Set("fields", strings.Join([]string{
		"name", "formatted_address", "rating", "user_ratings_total",
		"price_level", "types", "opening_hours", "formatted_phone_number",
		"website", "editorial_summary", "reviews",
	}, ","))
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, detailsEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build details request: %w", err)
	}

	resp, err := googleHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("details request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("details request returned status %d", resp.StatusCode)
	}

	var payload detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode details response: %w", err)
	}

	switch payload.Status {
	case "OK":
		return convertDetails(payload.Result), nil
	case "NOT_FOUND", "ZERO_RESULTS", "INVALID_REQUEST":
		return nil, nil
	default:
		return nil, fmt.Errorf("details request returned status %q", payload.Status)
	}
}

// convertDetails maps the raw API shape onto models.PlaceDetails, keeping at
// most 3 review excerpts.
func convertDetails(r detailsResult) *models.PlaceDetails {
	d := &models.PlaceDetails{
		Name:             r.Name,
		FormattedAddress: r.FormattedAddress,
		Rating:           r.Rating,
		RatingCount:      r.UserRatingsTotal,
		PriceLevel:       r.PriceLevel,
		Types:            r.Types,
		Phone:            r.Phone,
		Website:          r.Website,
		EditorialSummary: r.EditorialSummary.Overview,
	}
	if len(r.Types) > 0 {
		d.PrimaryType = r.Types[0]
		d.PrimaryTypeLabel = typeLabel(r.Types[0])
	}
	if r.OpeningHours != nil {
		hours := &models.OpeningHours{
			WeekdayText: r.OpeningHours.WeekdayText,
			OpenNow:     r.OpeningHours.OpenNow,
		}
		for _, p := range r.OpeningHours.Periods {
			hours.Periods = append(hours.Periods, models.OpeningPeriod{
				Day:       p.Open.Day,
				OpenTime:  p.Open.Time,
				CloseTime: p.Close.Time,
			})
		}
		d.OpeningHours = hours
	}
	for i, rev := range r.Reviews {
		if i >= 3 {
			break
		}
		d.Reviews = append(d.Reviews, models.Review{
			Author:       rev.AuthorName,
			Rating:       rev.Rating,
			Text:         rev.Text,
			RelativeTime: rev.RelativeTimeDescription,
		})
	}
	return d
}

// typeLabel turns an API type tag like "vegan_restaurant" into a display label.
func typeLabel(t string) string {
	words := strings.Split(t, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a free-text query to coordinates.
func (g *GooglePlacesProvider) Geocode(ctx context.Context, query string) (*models.GeoPoint, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("geocoder is not configured")
	}

	params := url.Values{}
	params.Set("address", query)
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, geocodeEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}

	resp, err := googleHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode request returned status %d", resp.StatusCode)
	}

	var payload geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	if payload.Status != "OK" || len(payload.Results) == 0 {
		return nil, nil
	}
	loc := payload.Results[0].Geometry.Location
	return &models.GeoPoint{Lat: loc.Lat, Lng: loc.Lng}, nil
}
