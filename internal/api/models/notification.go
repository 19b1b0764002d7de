package models

import "time"

// NotificationType is the severity class of a notification.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// Notification is one stored message for one user. Rows are created from the
// workflow engine's intents by a single dispatcher, never ad hoc.
type Notification struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	UserID       uint             `gorm:"not null;index" json:"userId"`
	Title        string           `gorm:"not null" json:"title"`
	Message      string           `gorm:"type:text" json:"message"`
	RelatedJobID *uint            `gorm:"index" json:"relatedJobId,omitempty"`
	Type         NotificationType `gorm:"type:varchar(10);default:info" json:"type"`
	Read         bool             `gorm:"default:false" json:"read"`
	CreatedAt    time.Time        `json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
