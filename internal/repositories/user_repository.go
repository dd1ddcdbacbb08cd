package repositories

import "locgm/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Exists(email string) (bool, error)
	GetByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	GetAll() ([]models.User, error)
	Update(id uint, name string, role models.Role, companyName string) error
	UpdateProfile(user *models.User) error
	Delete(id uint) error
}
