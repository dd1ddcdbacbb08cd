package repositories

import "locgm/internal/models"

// PlaceRepository defines the interface for place data access.
type PlaceRepository interface {
	GetAll() ([]models.Place, error)
	GetByOwner(ownerEmail string) ([]models.Place, error)
	GetByID(id uint) (*models.Place, error)
	Create(place *models.Place) error
	Update(place *models.Place) error
}
