package repository

import (
	"github.com/lenspick/lenspick-backend/internal/app/model"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *model.Notification) error
	FindByProfileID(profileID uint, limit, offset int) ([]model.Notification, int64, error)
	MarkRead(id, profileID uint) error
	MarkAllRead(profileID uint) error
	CountUnread(profileID uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepository) FindByProfileID(profileID uint, limit, offset int) ([]model.Notification, int64, error) {
	var notifications []model.Notification
	var total int64

	db := r.db.Model(&model.Notification{}).Where("profile_id = ?", profileID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	return notifications, total, err
}

// MarkRead 본인 알림만 읽음 처리할 수 있음
func (r *notificationRepository) MarkRead(id, profileID uint) error {
	result := r.db.Model(&model.Notification{}).
		Where("id = ? AND profile_id = ?", id, profileID).
		UpdateColumn("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(profileID uint) error {
	return r.db.Model(&model.Notification{}).
		Where("profile_id = ? AND is_read = ?", profileID, false).
		UpdateColumn("is_read", true).Error
}

func (r *notificationRepository) CountUnread(profileID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("profile_id = ? AND is_read = ?", profileID, false).
		Count(&count).Error
	return count, err
}
