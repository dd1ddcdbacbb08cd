package repositories

import "locgm/internal/models"

// CompanyRepository defines the interface for company data access.
type CompanyRepository interface {
	Exists(email string) (bool, error)
	Create(company *models.Company) error
	GetAll() ([]models.Company, error)
	Update(id uint, companyName, address, phone string) error
	Delete(id uint) error
}
