package models

import "gorm.io/gorm"

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

type User struct {
	gorm.Model
	Email     string  `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string  `json:"-" gorm:"type:varchar(255);not null"`
	FirstName string  `json:"firstName" gorm:"type:varchar(100);not null"`
	LastName  string  `json:"lastName" gorm:"type:varchar(100);not null"`
	Phone     string  `json:"phone" gorm:"type:varchar(20)"`
	Address   string  `json:"address" gorm:"type:varchar(500)"`
	City      string  `json:"city" gorm:"type:varchar(100)"`
	ZipCode   string  `json:"zipCode" gorm:"type:varchar(20)"`
	// No gorm default tag, same zero-value trap as Food.IsAvailable.
	IsActive bool `json:"isActive"`
	Roles     []Role  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Orders    []Order `json:"-" gorm:"foreignKey:UserID"`
}

// Role rows live in their own table so that a profile update can never grant
// admin. Authorization checks must read this table, not a field on User.
type Role struct {
	gorm.Model
	UserID uint     `json:"userId" gorm:"not null;index"`
	Role   UserRole `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
}

// RoleNames flattens preloaded Role rows for responses and token claims.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, string(r.Role))
	}
	return names
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
