package importer

import (
	"context"
	"errors"
	"sync"
	"testing"

	placeRepo "placemate/database/repository/place"
	"placemate/models"
)

func TestExtractCoordinates(t *testing.T) {
	tests := []struct {
		name string
		url  string
		lat  float64
		lng  float64
	}{
		{
			name: "at form",
			url:  "https://www.google.com/maps/place/Cafe/@45.5231,-73.6012,17z/",
			lat:  45.5231, lng: -73.6012,
		},
		{
			name: "data form",
			url:  "https://www.google.com/maps/place/Cafe/data=!3d45.5231!4d-73.6012",
			lat:  45.5231, lng: -73.6012,
		},
		{
			name: "query form",
			url:  "https://maps.google.com/?q=45.5164,-73.5772",
			lat:  45.5164, lng: -73.5772,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geo := ExtractCoordinates(tt.url)
			if geo == nil {
				t.Fatalf("no coordinates extracted from %s", tt.url)
			}
			if geo.Lat != tt.lat || geo.Lng != tt.lng {
				t.Errorf("got (%f, %f), want (%f, %f)", geo.Lat, geo.Lng, tt.lat, tt.lng)
			}
		})
	}
}

func TestExtractCoordinatesRejectsInvalid(t *testing.T) {
	urls := []string{
		"",
		"https://example.com/no-coords",
		"https://maps.google.com/?q=91.0,-73.5",
		"https://maps.google.com/?q=45.5,-181.0",
	}
	for _, url := range urls {
		if geo := ExtractCoordinates(url); geo != nil {
			t.Errorf("ExtractCoordinates(%q) = %+v, want nil", url, geo)
		}
	}
}

func TestExtractExternalID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "place_id query param",
			url:  "https://www.google.com/maps/search/?api=1&place_id=ChIJd8BlQ2BZwokRAFUEcm_qrcA",
			want: "ChIJd8BlQ2BZwokRAFUEcm_qrcA",
		},
		{
			name: "malformed ftid",
			url:  "https://www.google.com/maps/place/Cafe/data=!1s0x4cc91a4c4bz:0x8a7c9f3e2d1b0a99",
			want: "",
		},
		{
			name: "no id",
			url:  "https://example.com",
			want: "",
		},
		{
			name: "empty",
			url:  "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractExternalID(tt.url); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractExternalIDFtid(t *testing.T) {
	url := "https://www.google.com/maps/place/Cafe/data=!4m2!1s0x4cc91a541f65b2d7:0x3d5c9f3e2d1b0a99!3m1"
	if got := ExtractExternalID(url); got != "0x4cc91a541f65b2d7:0x3d5c9f3e2d1b0a99" {
		t.Errorf("ftid not extracted, got %q", got)
	}
}

// scriptedGeocoder resolves chosen queries and fails or misses the rest.
type scriptedGeocoder struct {
	mu      sync.Mutex
	results map[string]*models.GeoPoint
	errFor  map[string]error
	calls   int
}

func (g *scriptedGeocoder) Geocode(ctx context.Context, query string) (*models.GeoPoint, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if err, ok := g.errFor[query]; ok {
		return nil, err
	}
	return g.results[query], nil
}

func TestResolveMissingCoordinates(t *testing.T) {
	repo := placeRepo.NewMemoryPlaceRepo()
	_, err := repo.BulkUpsert([]models.Place{
		{ID: "1", Name: "Cafe One", Address: "1 Main St"},
		{ID: "2", Name: "Cafe Two"},
		{ID: "3", Name: "Located", Coordinates: &models.GeoPoint{Lat: 1, Lng: 2}},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	geocoder := &scriptedGeocoder{
		results: map[string]*models.GeoPoint{
			"Cafe One, 1 Main St": {Lat: 45.5, Lng: -73.6},
			"Cafe Two":            {Lat: 45.6, Lng: -73.7},
		},
	}

	resolved, err := ResolveMissingCoordinates(context.Background(), repo, geocoder)
	if err != nil {
		t.Fatalf("ResolveMissingCoordinates: %v", err)
	}
	if resolved != 2 {
		t.Errorf("expected 2 resolved, got %d", resolved)
	}

	p, err := repo.GetByID("1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if p.Coordinates == nil || p.Coordinates.Lat != 45.5 {
		t.Errorf("coordinates not stored: %+v", p.Coordinates)
	}

	remaining, err := repo.MissingCoordinates(10)
	if err != nil {
		t.Fatalf("MissingCoordinates: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("expected no places left without coordinates, got %d", len(remaining))
	}
}

func TestResolveMissingCoordinatesStopsWithoutProgress(t *testing.T) {
	repo := placeRepo.NewMemoryPlaceRepo()
	if _, err := repo.BulkUpsert([]models.Place{{ID: "1", Name: "Unfindable"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	geocoder := &scriptedGeocoder{errFor: map[string]error{
		"Unfindable": errors.New("ZERO_RESULTS"),
	}}

	resolved, err := ResolveMissingCoordinates(context.Background(), repo, geocoder)
	if err != nil {
		t.Fatalf("ResolveMissingCoordinates: %v", err)
	}
	if resolved != 0 {
		t.Errorf("expected 0 resolved, got %d", resolved)
	}
	if geocoder.calls != 1 {
		t.Errorf("a batch with no progress must not be retried, got %d calls", geocoder.calls)
	}
}
