package repository

import (
	"fmt"

	"github.com/lenspick/lenspick-backend/internal/app/model"
	"gorm.io/gorm"
)

// PostRepository 게시물 저장소 인터페이스
type PostRepository interface {
	Create(post *model.Post) error
	FindByID(id uint, preload bool) (*model.Post, error)
	List(query *model.PostListQuery) ([]model.Post, int64, error)
	ListByCategories(slugs []string, excludeProfileID uint, limit int) ([]model.Post, error)
	Update(post *model.Post) error
	Delete(id uint) error

	IncrementReceivedReviews(id uint) error
	SetLive(id uint) error
	SumReceivedReviews(profileID uint) (int64, error)
	CountByProfile(profileID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *model.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return err
	}

	// 작성자 프로필을 Preload하여 다시 조회
	return r.db.Preload("Profile").First(post, post.ID).Error
}

func (r *postRepository) FindByID(id uint, preload bool) (*model.Post, error) {
	var post model.Post
	query := r.db.Where("id = ?", id)

	if preload {
		query = query.
			Preload("Profile").
			Preload("Reviews", func(db *gorm.DB) *gorm.DB {
				return db.Order("reviews.created_at DESC")
			}).
			Preload("Reviews.Reviewer")
	}

	if err := query.First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// List 조건/페이지네이션 기반 게시물 목록 조회
func (r *postRepository) List(query *model.PostListQuery) ([]model.Post, int64, error) {
	var posts []model.Post
	var total int64

	db := r.db.Model(&model.Post{})

	if query.Category != "" {
		// 장르 목록은 JSON 배열로 저장되므로 인용된 슬러그로 부분 일치 검색
		db = db.Where("categories LIKE ?", fmt.Sprintf("%%%q%%", query.Category))
	}
	if query.ProfileID != 0 {
		db = db.Where("profile_id = ?", query.ProfileID)
	}
	if query.Live != nil {
		db = db.Where("is_live = ?", *query.Live)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := query.SortBy
	switch sortBy {
	case "created_at", "received_reviews":
	default:
		sortBy = "created_at"
	}
	sortOrder := "DESC"
	if query.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	offset := (query.Page - 1) * query.PageSize
	err := db.Preload("Profile").
		Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Offset(offset).
		Limit(query.PageSize).
		Find(&posts).Error
	return posts, total, err
}

// ListByCategories 관심 장르와 겹치는 공개 게시물 조회 (추천 피드용)
func (r *postRepository) ListByCategories(slugs []string, excludeProfileID uint, limit int) ([]model.Post, error) {
	if len(slugs) == 0 {
		return []model.Post{}, nil
	}

	db := r.db.Model(&model.Post{}).Where("is_live = ?", true)
	if excludeProfileID != 0 {
		db = db.Where("profile_id != ?", excludeProfileID)
	}

	overlap := r.db
	for i, slug := range slugs {
		cond := fmt.Sprintf("%%%q%%", slug)
		if i == 0 {
			overlap = r.db.Where("categories LIKE ?", cond)
		} else {
			overlap = overlap.Or("categories LIKE ?", cond)
		}
	}

	var posts []model.Post
	err := db.Where(overlap).
		Preload("Profile").
		Order("received_reviews ASC, created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Update(post *model.Post) error {
	return r.db.Save(post).Error
}

func (r *postRepository) Delete(id uint) error {
	return r.db.Delete(&model.Post{}, id).Error
}

// IncrementReceivedReviews 받은 리뷰 수를 1 늘림 (단일 SQL 문)
func (r *postRepository) IncrementReceivedReviews(id uint) error {
	return r.db.Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("received_reviews", gorm.Expr("received_reviews + ?", 1)).Error
}

// SetLive 게시물을 공개 상태로 전환 (역방향 전환 없음)
func (r *postRepository) SetLive(id uint) error {
	return r.db.Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("is_live", true).Error
}

// SumReceivedReviews 프로필의 모든 게시물이 받은 리뷰 수 합계
func (r *postRepository) SumReceivedReviews(profileID uint) (int64, error) {
	var sum int64
	err := r.db.Model(&model.Post{}).
		Where("profile_id = ?", profileID).
		Select("COALESCE(SUM(received_reviews), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *postRepository) CountByProfile(profileID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Post{}).Where("profile_id = ?", profileID).Count(&count).Error
	return count, err
}
