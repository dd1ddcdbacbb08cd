package models

// User represents an account of the directory, either a business or a visitor.
type User struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Email       string `json:"email" gorm:"uniqueIndex;type:varchar(255);not null" validate:"required,email"`
	Role        Role   `json:"role" gorm:"type:varchar(20);not null;default:visitante"`
	Name        string `json:"name" gorm:"type:varchar(255)"`
	CompanyName string `json:"company_name" gorm:"type:varchar(255)"`
	Phone       string `json:"phone" gorm:"type:varchar(50)"`
	Address     string `json:"address" gorm:"type:varchar(255)"`
	PricesNote  string `json:"prices_note" gorm:"type:text"`
}

func (User) TableName() string { return "users" }

// IsEmpresa reports whether the user may manage places, post to the feed and use the admin panel.
func (u *User) IsEmpresa() bool {
	return u != nil && u.Role == RoleEmpresa
}

// DisplayName is the name shown next to the user's feed posts.
func (u *User) DisplayName() string {
	if u.CompanyName != "" {
		return u.CompanyName
	}
	return u.Name
}
