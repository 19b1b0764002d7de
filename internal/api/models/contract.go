package models

import (
	"time"

	"gorm.io/gorm"
)

// Contract links a client to an agreed package, with the signed document
// stored as a file in the blob store.
type Contract struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ClientID  uint           `gorm:"not null;index" json:"clientId"`
	Client    Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	PackageID *uint          `gorm:"index" json:"packageId,omitempty"`
	Title     string         `gorm:"not null" json:"title"`
	FilePath  string         `gorm:"type:text" json:"filePath,omitempty"`
	Signed    bool           `gorm:"default:false" json:"signed"`
	SignedAt  *time.Time     `json:"signedAt,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Contract) TableName() string {
	return "contracts"
}
