package repository

import (
	"github.com/lenspick/lenspick-backend/internal/app/model"
	"github.com/lenspick/lenspick-backend/pkg/logger"
	"gorm.io/gorm"
)

// ProfileRepository 프로필 저장소 인터페이스
type ProfileRepository interface {
	Create(profile *model.Profile) error
	FindByID(id uint) (*model.Profile, error)
	FindByUserID(userID uint) (*model.Profile, error)
	Update(profile *model.Profile) error

	// 카운터 갱신 (단일 SQL 문으로 실행되어 동시 호출에 안전)
	DecrementReviewsToUnlock(id uint) error
	ResetReviewsToUnlock(id uint, count int) error
	IncrementReviewCount(id uint) error
	AddReceivedRatings(id uint, technical, composition, creativity int) error

	FindUnlockPending(minRemaining int) ([]model.Profile, error)
	CountAll() (int64, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(profile *model.Profile) error {
	logger.Debug("Creating profile in database", map[string]interface{}{
		"user_id": profile.UserID,
	})

	if err := r.db.Create(profile).Error; err != nil {
		logger.Error("Failed to create profile in database", err, map[string]interface{}{
			"user_id": profile.UserID,
		})
		return err
	}
	return nil
}

func (r *profileRepository) FindByID(id uint) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindByUserID(userID uint) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(profile *model.Profile) error {
	return r.db.Save(profile).Error
}

// DecrementReviewsToUnlock 남은 리뷰 과제 수를 1 줄임 (0 미만으로 내려가지 않음)
func (r *profileRepository) DecrementReviewsToUnlock(id uint) error {
	return r.db.Model(&model.Profile{}).
		Where("id = ?", id).
		UpdateColumn("reviews_to_unlock",
			gorm.Expr("CASE WHEN reviews_to_unlock > 0 THEN reviews_to_unlock - 1 ELSE 0 END")).Error
}

// ResetReviewsToUnlock 리뷰 과제 수를 지정 값으로 재설정 (온보딩/관리자용)
func (r *profileRepository) ResetReviewsToUnlock(id uint, count int) error {
	return r.db.Model(&model.Profile{}).
		Where("id = ?", id).
		UpdateColumn("reviews_to_unlock", count).Error
}

func (r *profileRepository) IncrementReviewCount(id uint) error {
	return r.db.Model(&model.Profile{}).
		Where("id = ?", id).
		UpdateColumn("review_count", gorm.Expr("review_count + ?", 1)).Error
}

// AddReceivedRatings 받은 평점 누계에 리뷰 점수를 더함
func (r *profileRepository) AddReceivedRatings(id uint, technical, composition, creativity int) error {
	return r.db.Model(&model.Profile{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"technical_total":   gorm.Expr("technical_total + ?", technical),
			"composition_total": gorm.Expr("composition_total + ?", composition),
			"creativity_total":  gorm.Expr("creativity_total + ?", creativity),
		}).Error
}

// FindUnlockPending 아직 게시 잠금이 풀리지 않은 프로필 목록 (리마인더 발송용)
func (r *profileRepository) FindUnlockPending(minRemaining int) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.db.Where("reviews_to_unlock >= ?", minRemaining).Find(&profiles).Error
	return profiles, err
}

func (r *profileRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&model.Profile{}).Count(&count).Error
	return count, err
}
