package placeRepo

import (
	"placemate/models"
)

// PlaceRepository defines storage operations over saved places. The chat
// core only reads through GetAll and GetByListName; the import pipeline and
// coordinate resolver own the writes.
type PlaceRepository interface {
	GetAll() ([]models.Place, error)
	GetByListName(name string) ([]models.Place, error)
	GetByID(id string) (*models.Place, error)
	BulkUpsert(places []models.Place) (int, error)
	Delete(id string) error
	UpdateCoordinates(id string, geo models.GeoPoint) error
	ListNames() ([]string, error)
	MissingCoordinates(limit int) ([]models.Place, error)
}
