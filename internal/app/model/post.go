package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MaxPostImages    = 3 // 게시물당 최대 이미지 수
	MaxPostQuestions = 3 // 게시물당 최대 질문 수

	DefaultRequiredReviews = 3  // 목표 리뷰 수 기본값
	MaxRequiredReviews     = 10 // 목표 리뷰 수 상한
)

// Post 비평을 받기 위해 올린 사진 게시물
type Post struct {
	ID        uint      `gorm:"primarykey" json:"id"`                 // 게시물 ID
	ProfileID uint      `gorm:"not null;index" json:"profile_id"`     // 작성자 프로필 ID
	Title     string    `gorm:"not null" json:"title"`                // 제목
	Caption   string    `gorm:"type:text" json:"caption"`             // 설명

	Categories datatypes.JSONSlice[string] `json:"categories"` // 장르 슬러그 목록
	ImageURLs  datatypes.JSONSlice[string] `json:"image_urls"` // 업로드된 이미지 URL 목록
	Questions  datatypes.JSONSlice[string] `json:"questions"`  // 리뷰어에게 묻는 질문 (최대 3개)

	// IsLive: 작성 시점의 작성자 잠금 상태로 결정되며 이후 해제되지 않음
	IsLive          bool `gorm:"not null;default:false;index" json:"is_live"` // 공개 여부
	RequiredReviews int  `gorm:"not null" json:"required_reviews"`            // 목표 리뷰 수 (생성 시 코드에서 설정)
	ReceivedReviews int  `gorm:"not null;default:0" json:"received_reviews"`  // 받은 리뷰 수

	CreatedAt time.Time      `json:"created_at"` // 생성 시각
	UpdatedAt time.Time      `json:"updated_at"` // 수정 시각
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Profile *Profile `gorm:"foreignKey:ProfileID" json:"profile,omitempty"` // 작성자 프로필
	Reviews []Review `gorm:"foreignKey:PostID" json:"reviews,omitempty"`    // 받은 리뷰 목록
}

func (Post) TableName() string {
	return "posts"
}

// CreatePostRequest 게시물 생성 요청 (multipart form의 텍스트 필드)
type CreatePostRequest struct {
	Title           string   `form:"title" binding:"required,min=1,max=100"`
	Caption         string   `form:"caption" binding:"max=1000"`
	Categories      []string `form:"categories" binding:"required,min=1"`
	Questions       []string `form:"questions"`
	RequiredReviews int      `form:"required_reviews" binding:"omitempty,min=1,max=10"` // 생략 시 기본값 적용
}

// PostDetailResponse 게시물 상세 응답
// 포함된 리뷰는 익명 여부에 따라 리뷰어 정보를 감춘 채 내려간다
type PostDetailResponse struct {
	Post
	Reviews []*ReviewResponse `json:"reviews"`
}

func NewPostDetailResponse(p *Post) *PostDetailResponse {
	resp := &PostDetailResponse{Post: *p}
	resp.Post.Reviews = nil
	resp.Reviews = make([]*ReviewResponse, 0, len(p.Reviews))
	for i := range p.Reviews {
		resp.Reviews = append(resp.Reviews, NewReviewResponse(&p.Reviews[i]))
	}
	return resp
}

// PostListQuery 게시물 목록 조회 조건
type PostListQuery struct {
	Category  string `form:"category"`
	ProfileID uint   `form:"profile_id"`
	Live      *bool  `form:"live"`
	Page      int    `form:"page,default=1" binding:"min=1"`
	PageSize  int    `form:"page_size,default=20" binding:"min=1,max=100"`
	SortBy    string `form:"sort_by,default=created_at"`
	SortOrder string `form:"sort_order,default=desc"`
}

// PostListResponse 페이지네이션 포함 목록 응답
type PostListResponse struct {
	Posts      []Post `json:"posts"`
	TotalCount int64  `json:"total_count"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
}
