package repositories

import (
	"fmt"

	"locgm/internal/models"
)

// GORMCompanyRepository is a GORM implementation of CompanyRepository.
type GORMCompanyRepository struct {
	gw *Gateway
}

// NewGORMCompanyRepository creates a new instance of GORMCompanyRepository.
func NewGORMCompanyRepository(gw *Gateway) *GORMCompanyRepository {
	return &GORMCompanyRepository{
		gw: gw,
	}
}

// Exists reports whether a company with the given email is stored.
func (r *GORMCompanyRepository) Exists(email string) (bool, error) {
	db, err := r.gw.Conn()
	if err != nil {
		return false, err
	}
	var count int64
	if err := db.Model(&models.Company{}).Where("email = ?", email).Limit(1).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check company %s: %w", email, err)
	}
	return count > 0, nil
}

// Create creates a new company in the database. The generated id is set on company.
func (r *GORMCompanyRepository) Create(company *models.Company) error {
	db, err := r.gw.Conn()
	if err != nil {
		return err
	}
	if err := db.Create(company).Error; err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

// GetAll retrieves all companies from the database.
func (r *GORMCompanyRepository) GetAll() ([]models.Company, error) {
	db, err := r.gw.Conn()
	if err != nil {
		return nil, err
	}
	var companies []models.Company
	if err := db.Order("id").Find(&companies).Error; err != nil {
		return nil, fmt.Errorf("failed to get all companies: %w", err)
	}
	return companies, nil
}

// Update overwrites name, address and phone of a company. Last write wins.
func (r *GORMCompanyRepository) Update(id uint, companyName, address, phone string) error {
	db, err := r.gw.Conn()
	if err != nil {
		return err
	}
	res := db.Model(&models.Company{}).Where("id = ?", id).Updates(map[string]interface{}{
		"company_name": companyName,
		"address":      address,
		"phone":        phone,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update company %d: %w", id, res.Error)
	}
	return nil
}

// Delete deletes a company by its ID from the database.
func (r *GORMCompanyRepository) Delete(id uint) error {
	db, err := r.gw.Conn()
	if err != nil {
		return err
	}
	if err := db.Delete(&models.Company{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete company %d: %w", id, err)
	}
	return nil
}
