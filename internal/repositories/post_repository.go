package repositories

import "locgm/internal/models"

// PostRepository defines the interface for the append-only feed.
type PostRepository interface {
	Create(post *models.Post) error
	// GetAll returns posts newest first.
	GetAll() ([]models.Post, error)
}
