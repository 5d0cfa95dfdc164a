package model

import "time"

type NotificationType string // 알림 유형

const (
	NotificationReviewReceived NotificationType = "review_received" // 내 게시물에 리뷰가 달림
	NotificationPostUnlocked   NotificationType = "post_unlocked"   // 게시 잠금이 해제됨
	NotificationUnlockReminder NotificationType = "unlock_reminder" // 리뷰 과제 리마인더
)

// Notification 프로필 대상 알림
type Notification struct {
	ID        uint             `gorm:"primarykey" json:"id"`
	ProfileID uint             `gorm:"not null;index" json:"profile_id"` // 수신 프로필 ID
	Type      NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Message   string           `gorm:"not null" json:"message"`
	PostID    *uint            `json:"post_id,omitempty"` // 관련 게시물 (있을 때만)
	IsRead    bool             `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
