package models

import (
	"time"

	"gorm.io/gorm"
)

// Client is a customer record. A user with the client role sees their own
// jobs and payments when their session email matches this record's email.
type Client struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"index;not null" json:"email"`
	Phone     string         `json:"phone"`
	Company   string         `json:"company,omitempty"`
	Notes     string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Client) TableName() string {
	return "clients"
}
