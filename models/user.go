package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of account roles. Guest is never persisted; it only
// labels unauthenticated chatbot callers.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleTechnician Role = "technician"
	RoleAdmin      Role = "admin"
	RoleGuest      Role = "guest"
)

// IsRegisterable reports whether the role may be chosen at registration.
// Admin accounts exist only through seeding.
func (r Role) IsRegisterable() bool {
	return r == RoleCustomer || r == RoleTechnician
}

// User represents an account in the system (customer, technician or admin)
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Role         Role           `gorm:"not null;default:'customer'" json:"role"` // immutable after creation
	Phone        string         `json:"phone,omitempty"`
	Bio          string         `json:"bio,omitempty"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	LastLogin    *time.Time     `json:"last_login,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
