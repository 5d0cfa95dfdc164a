package service

import (
	"errors"

	"github.com/lenspick/lenspick-backend/internal/app/model"
	"github.com/lenspick/lenspick-backend/internal/app/repository"
	"github.com/lenspick/lenspick-backend/internal/websocket"
	"github.com/lenspick/lenspick-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationService interface {
	Notify(profileID uint, notifType model.NotificationType, message string, postID *uint)
	List(profileID uint, limit, offset int) ([]model.Notification, int64, error)
	MarkRead(id, profileID uint) error
	MarkAllRead(profileID uint) error
	CountUnread(profileID uint) (int64, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	hub              *websocket.Hub
}

func NewNotificationService(notificationRepo repository.NotificationRepository, hub *websocket.Hub) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		hub:              hub,
	}
}

// Notify 알림을 저장하고 접속 중인 세션에 즉시 푸시
// 알림 실패가 호출한 쪽의 작업을 되돌리지 않도록 에러를 반환하지 않는다
func (s *notificationService) Notify(profileID uint, notifType model.NotificationType, message string, postID *uint) {
	notification := &model.Notification{
		ProfileID: profileID,
		Type:      notifType,
		Message:   message,
		PostID:    postID,
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		logger.Error("Failed to store notification", err, map[string]interface{}{
			"profile_id": profileID,
			"type":       notifType,
		})
		return
	}

	if s.hub != nil {
		if err := s.hub.SendToProfile(profileID, notification); err != nil {
			logger.Warn("Failed to push notification", map[string]interface{}{
				"profile_id": profileID,
				"error":      err.Error(),
			})
		}
	}
}

func (s *notificationService) List(profileID uint, limit, offset int) ([]model.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.notificationRepo.FindByProfileID(profileID, limit, offset)
}

func (s *notificationService) MarkRead(id, profileID uint) error {
	if err := s.notificationRepo.MarkRead(id, profileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

func (s *notificationService) MarkAllRead(profileID uint) error {
	return s.notificationRepo.MarkAllRead(profileID)
}

func (s *notificationService) CountUnread(profileID uint) (int64, error) {
	return s.notificationRepo.CountUnread(profileID)
}
