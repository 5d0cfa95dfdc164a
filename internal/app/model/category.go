package model

import "time"

// Category 사진 장르 (관심사 선택과 게시물 분류에 공용)
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"` // URL/필터용 슬러그
	Name      string    `gorm:"not null" json:"name"`             // 표시 이름
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

// DefaultCategories 초기 시드 장르 목록
func DefaultCategories() []Category {
	return []Category{
		{Slug: "portrait", Name: "인물", SortOrder: 1},
		{Slug: "landscape", Name: "풍경", SortOrder: 2},
		{Slug: "street", Name: "스트리트", SortOrder: 3},
		{Slug: "wildlife", Name: "야생동물", SortOrder: 4},
		{Slug: "macro", Name: "접사", SortOrder: 5},
		{Slug: "architecture", Name: "건축", SortOrder: 6},
		{Slug: "night", Name: "야경", SortOrder: 7},
		{Slug: "film", Name: "필름", SortOrder: 8},
		{Slug: "documentary", Name: "다큐멘터리", SortOrder: 9},
		{Slug: "abstract", Name: "추상", SortOrder: 10},
	}
}
