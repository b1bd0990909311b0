package models

import (
	"time"
)

// ContactMessage status values
const (
	ContactStatusUnread = "Unread"
	ContactStatusRead   = "Read"
)

// ContactMessage represents a submission from the public contact form
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Subject   string    `gorm:"not null" json:"subject"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Status    string    `gorm:"not null;default:'Unread'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the ContactMessage model
func (ContactMessage) TableName() string {
	return "contact_messages"
}
