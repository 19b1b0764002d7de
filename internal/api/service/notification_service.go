package service

import (
	"fmt"
	"time"

	"studio"
	"studio/internal/api/models"
	"studio/internal/api/repo"
	"studio/pkg"

	"github.com/rs/zerolog"
)

const unreadCountTTL = 30 * time.Second

type NotificationService struct {
	notificationRepo *repo.NotificationRepository
	logger           zerolog.Logger
}

func NewNotificationService() *NotificationService {
	return &NotificationService{
		notificationRepo: repo.NewNotificationRepository(),
		logger:           studio.Logger,
	}
}

func (slf *NotificationService) FindForUser(userID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	notifications, err := slf.notificationRepo.FindByUser(userID, limit)
	if err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error listing notifications")
		return nil, err
	}
	return notifications, nil
}

// CountUnread returns the unread badge count, cached briefly in Redis since
// every open dashboard polls it.
func (slf *NotificationService) CountUnread(userID uint) (int64, error) {
	key := unreadKey(userID)

	var cached int64
	if err := pkg.RedisGet(key, &cached); err == nil {
		return cached, nil
	} else if !pkg.IsRedisNil(err) {
		slf.logger.Warn().Err(err).Str("key", key).Msg("Error reading unread counter cache")
	}

	count, err := slf.notificationRepo.CountUnread(userID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error counting unread notifications")
		return 0, err
	}

	if err := pkg.RedisSet(key, count, unreadCountTTL); err != nil {
		slf.logger.Warn().Err(err).Str("key", key).Msg("Error writing unread counter cache")
	}
	return count, nil
}

func (slf *NotificationService) MarkRead(id uint, userID uint) error {
	if err := slf.notificationRepo.MarkRead(id, userID); err != nil {
		slf.logger.Error().Err(err).Uint("notificationId", id).Msg("Error marking notification read")
		return err
	}
	slf.invalidateUnread(userID)
	return nil
}

func (slf *NotificationService) MarkAllRead(userID uint) error {
	if err := slf.notificationRepo.MarkAllRead(userID); err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error marking notifications read")
		return err
	}
	slf.invalidateUnread(userID)
	return nil
}

func (slf *NotificationService) invalidateUnread(userID uint) {
	key := unreadKey(userID)
	if err := pkg.RedisDelete(key); err != nil {
		slf.logger.Warn().Err(err).Str("key", key).Msg("Error invalidating unread counter")
	}
}

func unreadKey(userID uint) string {
	return fmt.Sprintf("notifications:unread:%d", userID)
}
