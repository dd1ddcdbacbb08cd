package models

// Company is the business record linked to an "empresa" user by email only.
type Company struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Email       string `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	CompanyName string `json:"company_name" gorm:"type:varchar(255);not null"`
	Address     string `json:"address" gorm:"type:varchar(255)"`
	Phone       string `json:"phone" gorm:"type:varchar(50)"`
}

func (Company) TableName() string { return "companies" }
