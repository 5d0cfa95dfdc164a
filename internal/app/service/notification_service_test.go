package service

import (
	"testing"

	"github.com/lenspick/lenspick-backend/internal/app/model"
	"github.com/lenspick/lenspick-backend/internal/app/repository"
	"github.com/lenspick/lenspick-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupNotificationServiceTest(t *testing.T) NotificationService {
	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(database) })
	// 허브 없이도 알림 저장은 동작해야 함
	return NewNotificationService(repository.NewNotificationRepository(database), nil)
}

func TestNotificationService_Notify_StoresNotification(t *testing.T) {
	svc := setupNotificationServiceTest(t)

	postID := uint(42)
	svc.Notify(1, model.NotificationReviewReceived, "새 리뷰가 도착했습니다", &postID)
	svc.Notify(1, model.NotificationPostUnlocked, "잠금이 해제되었습니다", nil)
	svc.Notify(2, model.NotificationUnlockReminder, "리뷰 과제가 남아있어요", nil)

	notifications, total, err := svc.List(1, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, notifications, 2)

	unread, err := svc.CountUnread(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)
}

func TestNotificationService_MarkRead(t *testing.T) {
	svc := setupNotificationServiceTest(t)

	svc.Notify(1, model.NotificationReviewReceived, "새 리뷰가 도착했습니다", nil)

	notifications, _, err := svc.List(1, 20, 0)
	require.NoError(t, err)
	require.Len(t, notifications, 1)

	t.Run("Own notification", func(t *testing.T) {
		err := svc.MarkRead(notifications[0].ID, 1)
		require.NoError(t, err)

		unread, err := svc.CountUnread(1)
		require.NoError(t, err)
		assert.Equal(t, int64(0), unread)
	})

	t.Run("Someone else's notification", func(t *testing.T) {
		err := svc.MarkRead(notifications[0].ID, 99)
		assert.ErrorIs(t, err, ErrNotificationNotFound)
	})

	t.Run("Missing notification", func(t *testing.T) {
		err := svc.MarkRead(9999, 1)
		assert.ErrorIs(t, err, ErrNotificationNotFound)
	})
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	svc := setupNotificationServiceTest(t)

	svc.Notify(1, model.NotificationReviewReceived, "리뷰 1", nil)
	svc.Notify(1, model.NotificationReviewReceived, "리뷰 2", nil)
	svc.Notify(2, model.NotificationReviewReceived, "다른 프로필 알림", nil)

	require.NoError(t, svc.MarkAllRead(1))

	unread, err := svc.CountUnread(1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)

	// 다른 프로필 알림은 그대로
	unread, err = svc.CountUnread(2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)
}
