package models

import (
	"time"

	"gorm.io/gorm"
)

// ChatMessage represents a message in an order conversation. Messages are
// created on send and mutated only by the read-flag flip, never deleted.
type ChatMessage struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	OrderID   string         `gorm:"not null;index" json:"order_id"` // foreign key to orders table
	Order     Order          `gorm:"foreignKey:OrderID" json:"-"`    // don't include full order in JSON
	SenderID  uint           `gorm:"not null;index" json:"sender_id"`
	Sender    User           `gorm:"foreignKey:SenderID" json:"sender"`
	Body      string         `gorm:"type:text;not null" json:"body"`
	IsRead    bool           `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the ChatMessage model
func (ChatMessage) TableName() string {
	return "chat_messages"
}
