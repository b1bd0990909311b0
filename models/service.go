package models

import (
	"time"
)

// Service represents a bookable catalog entry
type Service struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Category    string    `gorm:"not null;index" json:"category"`
	Price       float64   `gorm:"not null;check:price > 0" json:"price"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Rating      float64   `gorm:"default:4.5" json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}
