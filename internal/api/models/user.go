package models

import (
	"time"

	"gorm.io/gorm"
)

// AppRole is the fixed identity classification of a user. It is set at
// creation and only changed by an admin action.
type AppRole string

const (
	RoleAdmin        AppRole = "admin"
	RoleReceptionist AppRole = "receptionist"
	RolePhotographer AppRole = "photographer"
	RoleDesigner     AppRole = "designer"
	RoleEditor       AppRole = "editor"
	RoleClient       AppRole = "client"
	RoleManager      AppRole = "manager"
	RoleAdsManager   AppRole = "ads_manager"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	Password     string         `gorm:"not null;column:password" json:"-"`
	FirstName    string         `gorm:"not null;column:first_name" json:"firstName"`
	LastName     string         `gorm:"not null;column:last_name" json:"lastName"`
	Role         AppRole        `gorm:"not null;type:varchar(20);default:client" json:"role"`
	Active       bool           `gorm:"default:true;column:active" json:"active"`
	RefreshToken string         `gorm:"type:text;column:refresh_token" json:"-"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;column:created_at" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime;column:updated_at" json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index;column:deleted_at" json:"-"`
}

func (User) TableName() string {
	return "users"
}
