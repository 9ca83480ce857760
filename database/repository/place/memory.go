package placeRepo

import (
	"fmt"
	"sync"

	"placemate/models"
)

// MemoryPlaceRepo is an in-memory PlaceRepository, used when no database is
// configured and throughout the tests.
type MemoryPlaceRepo struct {
	mu     sync.RWMutex
	places []models.Place
}

// NewMemoryPlaceRepo creates an empty in-memory place repository.
func NewMemoryPlaceRepo() *MemoryPlaceRepo {
	return &MemoryPlaceRepo{}
}

func (r *MemoryPlaceRepo) GetAll() ([]models.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Place, len(r.places))
	copy(out, r.places)
	return out, nil
}

func (r *MemoryPlaceRepo) GetByListName(name string) ([]models.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Place
	for _, p := range r.places {
		if p.ListName == name {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *MemoryPlaceRepo) GetByID(id string) (*models.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.places {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryPlaceRepo) BulkUpsert(places []models.Place) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range places {
		replaced := false
		for i := range r.places {
			if r.places[i].ID == p.ID {
				r.places[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			r.places = append(r.places, p)
		}
	}
	return len(places), nil
}

func (r *MemoryPlaceRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.places {
		if r.places[i].ID == id {
			r.places = append(r.places[:i], r.places[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("place with id %s not found", id)
}

func (r *MemoryPlaceRepo) UpdateCoordinates(id string, geo models.GeoPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.places {
		if r.places[i].ID == id {
			g := geo
			r.places[i].Coordinates = &g
			return nil
		}
	}
	return fmt.Errorf("place with id %s not found", id)
}

func (r *MemoryPlaceRepo) ListNames() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var names []string
	for _, p := range r.places {
		if !seen[p.ListName] {
			seen[p.ListName] = true
			names = append(names, p.ListName)
		}
	}
	return names, nil
}

func (r *MemoryPlaceRepo) MissingCoordinates(limit int) ([]models.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Place
	for _, p := range r.places {
		if p.Coordinates == nil {
			out = append(out, p)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}
