package models

import (
	"time"
)

// TechnicianAssignment links an order to the technician responsible for it.
// The unique index on order_id guarantees at most one assignment per order;
// reassignment replaces the row inside a transaction instead of appending.
type TechnicianAssignment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OrderID      string    `gorm:"uniqueIndex;not null" json:"order_id"`
	Order        Order     `gorm:"foreignKey:OrderID" json:"-"`
	TechnicianID uint      `gorm:"not null;index" json:"technician_id"`
	Technician   User      `gorm:"foreignKey:TechnicianID" json:"technician"`
	AssignedAt   time.Time `gorm:"autoCreateTime" json:"assigned_at"`
}

// TableName specifies the table name for the TechnicianAssignment model
func (TechnicianAssignment) TableName() string {
	return "order_technicians"
}
