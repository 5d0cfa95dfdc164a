package repository

import (
	"time"

	"github.com/lenspick/lenspick-backend/internal/app/model"
	"gorm.io/gorm"
)

// ReviewRepository 리뷰 저장소 인터페이스
type ReviewRepository interface {
	Create(review *model.Review) error
	FindByID(id uint) (*model.Review, error)
	FindByPostID(postID uint) ([]model.Review, error)
	FindByReviewerID(reviewerID uint, limit, offset int) ([]model.Review, int64, error)
	ExistsByPostAndReviewer(postID, reviewerID uint) (bool, error)
	CountSince(since time.Time) (int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		return err
	}
	return r.db.Preload("Reviewer").First(review, review.ID).Error
}

func (r *reviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.Preload("Reviewer").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByPostID(postID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.Where("post_id = ?", postID).
		Preload("Reviewer").
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) FindByReviewerID(reviewerID uint, limit, offset int) ([]model.Review, int64, error) {
	var reviews []model.Review
	var total int64

	db := r.db.Model(&model.Review{}).Where("reviewer_id = ?", reviewerID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Post").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	return reviews, total, err
}

// ExistsByPostAndReviewer 같은 게시물에 이미 리뷰했는지 확인
func (r *reviewRepository) ExistsByPostAndReviewer(postID, reviewerID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Review{}).
		Where("post_id = ? AND reviewer_id = ?", postID, reviewerID).
		Count(&count).Error
	return count > 0, err
}

// CountSince 지정 시각 이후 작성된 리뷰 수 (활동 리포트용)
func (r *reviewRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Review{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}
