package models

import "time"

// ContactMessage has no soft-delete flag; admins remove messages permanently.
type ContactMessage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;not null" json:"email"`
	Phone        string    `gorm:"size:50" json:"phone,omitempty"`
	Subject      string    `gorm:"size:200;not null" json:"subject"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	IsRead       bool      `gorm:"default:false" json:"is_read"`
	ResponseSent bool      `gorm:"default:false" json:"response_sent"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
