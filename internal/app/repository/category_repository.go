package repository

import (
	"github.com/lenspick/lenspick-backend/internal/app/model"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	FindAll() ([]model.Category, error)
	FindBySlugs(slugs []string) ([]model.Category, error)
	Seed(categories []model.Category) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) FindAll() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Order("sort_order ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) FindBySlugs(slugs []string) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Where("slug IN ?", slugs).Find(&categories).Error
	return categories, err
}

// Seed 기본 장르 목록 삽입 (이미 있으면 건너뜀)
func (r *categoryRepository) Seed(categories []model.Category) error {
	for _, c := range categories {
		if err := r.db.Where("slug = ?", c.Slug).FirstOrCreate(&c).Error; err != nil {
			return err
		}
	}
	return nil
}
