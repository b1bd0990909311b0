package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order status values. The only legal transition is Pending -> Done.
const (
	OrderStatusPending = "Pending"
	OrderStatusDone    = "Done"
)

// Order represents a customer's booking of one service. The primary key is an
// opaque token rather than a sequential id. Price is snapshotted at booking
// time and never follows later catalog edits.
type Order struct {
	ID            string         `gorm:"primaryKey" json:"id"`
	CustomerID    uint           `gorm:"not null;index" json:"customer_id"`
	Customer      User           `gorm:"foreignKey:CustomerID" json:"customer"`
	ServiceID     uint           `gorm:"not null;index" json:"service_id"`
	Service       Service        `gorm:"foreignKey:ServiceID" json:"service"`
	BookingDate   string         `gorm:"not null" json:"booking_date"` // YYYY-MM-DD
	Status        string         `gorm:"not null;default:'Pending';index" json:"status"`
	PaymentMethod string         `json:"payment_method"`
	Notes         string         `json:"notes"`
	Price         float64        `gorm:"not null" json:"price"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate assigns the opaque order token
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
