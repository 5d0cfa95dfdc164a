package scheduler

import (
	"fmt"

	"github.com/lenspick/lenspick-backend/internal/app/model"
	"github.com/lenspick/lenspick-backend/internal/app/repository"
	"github.com/lenspick/lenspick-backend/internal/app/service"
	"github.com/lenspick/lenspick-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// ReminderScheduler 리뷰 과제 리마인더 스케줄러
// 아직 게시 잠금이 풀리지 않은 프로필에 매일 저녁 알림을 보낸다
type ReminderScheduler struct {
	cron                *cron.Cron
	profileRepo         repository.ProfileRepository
	notificationService service.NotificationService
}

// NewReminderScheduler 리마인더 스케줄러 생성
func NewReminderScheduler(
	profileRepo repository.ProfileRepository,
	notificationService service.NotificationService,
) *ReminderScheduler {
	return &ReminderScheduler{
		cron:                cron.New(),
		profileRepo:         profileRepo,
		notificationService: notificationService,
	}
}

// Start 스케줄러 시작
func (s *ReminderScheduler) Start() error {
	// 매일 저녁 7시에 리마인더 발송 (KST 기준)
	// cron 표현식: "0 19 * * *" = 매일 19시 0분
	_, err := s.cron.AddFunc("0 19 * * *", s.SendReminders)
	if err != nil {
		logger.Error("Failed to add cron job for review reminders", err)
		return err
	}

	s.cron.Start()
	logger.Info("Review reminder scheduler started successfully (daily at 7:00 PM)", nil)

	return nil
}

// SendReminders 잠금 대기 프로필 전체에 리마인더 알림 발송
func (s *ReminderScheduler) SendReminders() {
	logger.Info("Starting scheduled review reminders", nil)

	profiles, err := s.profileRepo.FindUnlockPending(1)
	if err != nil {
		logger.Error("Failed to load unlock-pending profiles", err)
		return
	}

	for _, profile := range profiles {
		// 온보딩 전 프로필은 건너뜀
		if profile.OnboardingRequired() {
			continue
		}
		s.notificationService.Notify(
			profile.ID,
			model.NotificationUnlockReminder,
			fmt.Sprintf("리뷰 %d개만 더 남기면 게시물을 공개할 수 있어요!", profile.ReviewsToUnlock),
			nil,
		)
	}

	logger.Info("Review reminders sent", map[string]interface{}{
		"count": len(profiles),
	})
}

// Stop 스케줄러 중지
func (s *ReminderScheduler) Stop() {
	logger.Info("Stopping review reminder scheduler...", nil)
	s.cron.Stop()
	logger.Info("Review reminder scheduler stopped", nil)
}
