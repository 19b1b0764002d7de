package repo

import (
	"studio"
	"studio/internal/api/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	Db *gorm.DB
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{Db: studio.DB}
}

func (slf *NotificationRepository) CreateBatch(notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return slf.Db.Create(&notifications).Error
}

func (slf *NotificationRepository) FindByUser(userID uint, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := slf.Db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (slf *NotificationRepository) CountUnread(userID uint) (int64, error) {
	var count int64
	err := slf.Db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (slf *NotificationRepository) MarkRead(id uint, userID uint) error {
	return slf.Db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true).Error
}

func (slf *NotificationRepository) MarkAllRead(userID uint) error {
	return slf.Db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}
