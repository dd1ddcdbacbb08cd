package repositories

import (
	"errors"
	"fmt"

	"locgm/internal/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	gw *Gateway
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(gw *Gateway) *GORMUserRepository {
	return &GORMUserRepository{
		gw: gw,
	}
}

// Exists reports whether a user with the given email is stored.
func (r *GORMUserRepository) Exists(email string) (bool, error) {
	db, err := r.gw.Conn()
	if err != nil {
		return false, err
	}
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Limit(1).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check user %s: %w", email, err)
	}
	return count > 0, nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	db, err := r.gw.Conn()
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// Create creates a new user in the database. The generated id is set on user.
func (r *GORMUserRepository) Create(user *models.User) error {
	db, err := r.gw.Conn()
	if err != nil {
		return err
	}
	if err := db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetAll retrieves all users from the database.
func (r *GORMUserRepository) GetAll() ([]models.User, error) {
	db, err := r.gw.Conn()
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := db.Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

// Update sets the admin-editable fields of a user.
func (r *GORMUserRepository) Update(id uint, name string, role models.Role, companyName string) error {
	db, err := r.gw.Conn()
	if err != nil {
		return err
	}
	res := db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":         name,
		"role":         role,
		"company_name": companyName,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update user %d: %w", id, res.Error)
	}
	return nil
}

// UpdateProfile stores the self-editable fields of the user with user.Email.
func (r *GORMUserRepository) UpdateProfile(user *models.User) error {
	db, err := r.gw.Conn()
	if err != nil {
		return err
	}
	res := db.Model(&models.User{}).Where("email = ?", user.Email).Updates(map[string]interface{}{
		"name":         user.Name,
		"company_name": user.CompanyName,
		"phone":        user.Phone,
		"address":      user.Address,
		"prices_note":  user.PricesNote,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update profile of %s: %w", user.Email, res.Error)
	}
	return nil
}

// Delete deletes a user by its ID from the database.
func (r *GORMUserRepository) Delete(id uint) error {
	db, err := r.gw.Conn()
	if err != nil {
		return err
	}
	if err := db.Delete(&models.User{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return nil
}
