package repositories

import (
	"fmt"
	"sort"
	"sync"

	"locgm/internal/models"
)

// MemoryPlaceRepository is an in-memory implementation of PlaceRepository.
type MemoryPlaceRepository struct {
	places map[uint]models.Place
	nextID uint
	mu     sync.RWMutex
}

// NewMemoryPlaceRepository creates a new instance of MemoryPlaceRepository.
func NewMemoryPlaceRepository() *MemoryPlaceRepository {
	return &MemoryPlaceRepository{
		places: make(map[uint]models.Place),
		nextID: 1,
	}
}

// GetAll returns all places ordered by id.
func (r *MemoryPlaceRepository) GetAll() ([]models.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	placeList := make([]models.Place, 0, len(r.places))
	for _, p := range r.places {
		placeList = append(placeList, p)
	}
	sortPlaces(placeList)
	return placeList, nil
}

// GetByOwner returns the places owned by the given business email.
func (r *MemoryPlaceRepository) GetByOwner(ownerEmail string) ([]models.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var placeList []models.Place
	for _, p := range r.places {
		if p.OwnerEmail == ownerEmail {
			placeList = append(placeList, p)
		}
	}
	sortPlaces(placeList)
	return placeList, nil
}

// GetByID returns a place by its ID.
func (r *MemoryPlaceRepository) GetByID(id uint) (*models.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	place, ok := r.places[id]
	if !ok {
		return nil, fmt.Errorf("place with ID %d: %w", id, ErrNotFound)
	}
	return &place, nil
}

// Create adds a new place and assigns its ID.
func (r *MemoryPlaceRepository) Create(place *models.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if place.ID == 0 {
		place.ID = r.nextID
	}
	if place.ID >= r.nextID {
		r.nextID = place.ID + 1
	}
	r.places[place.ID] = *place
	return nil
}

// Update replaces an existing place.
func (r *MemoryPlaceRepository) Update(place *models.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.places[place.ID]; !ok {
		return fmt.Errorf("place with ID %d not found for update: %w", place.ID, ErrNotFound)
	}
	r.places[place.ID] = *place
	return nil
}

func sortPlaces(places []models.Place) {
	sort.Slice(places, func(i, j int) bool { return places[i].ID < places[j].ID })
}
