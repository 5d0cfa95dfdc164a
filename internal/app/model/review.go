package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	MinReviewScore = 1  // 리뷰 점수 최소값
	MaxReviewScore = 10 // 리뷰 점수 최대값
)

// Review 사진 게시물에 대한 구조화된 비평
// 제출 후 수정할 수 없음 (post_id, reviewer_id 쌍은 유일)
type Review struct {
	ID         uint `gorm:"primarykey" json:"id"`                                                // 리뷰 ID
	PostID     uint `gorm:"not null;uniqueIndex:idx_reviews_post_reviewer" json:"post_id"`       // 게시물 ID
	ReviewerID uint `gorm:"not null;uniqueIndex:idx_reviews_post_reviewer" json:"reviewer_id"`   // 리뷰어 프로필 ID

	TechnicalScore   int `gorm:"not null" json:"technical_score"`   // 기술 점수 (1~10)
	CompositionScore int `gorm:"not null" json:"composition_score"` // 구도 점수 (1~10)
	CreativityScore  int `gorm:"not null" json:"creativity_score"`  // 창의성 점수 (1~10)

	Feedback    string                      `gorm:"type:text" json:"feedback"`      // 서술형 피드백
	Answers     datatypes.JSONSlice[string] `json:"answers"`                        // 작성자 질문에 대한 답변
	IsAnonymous bool                        `gorm:"not null;default:false" json:"is_anonymous"` // 익명 여부

	CreatedAt time.Time `json:"created_at"` // 작성 시각

	Post     *Post    `gorm:"foreignKey:PostID" json:"-"`
	Reviewer *Profile `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"` // 리뷰어 프로필
}

func (Review) TableName() string {
	return "reviews"
}

// CreateReviewRequest 리뷰 제출 요청
type CreateReviewRequest struct {
	TechnicalScore   int      `json:"technical_score" binding:"required,min=1,max=10"`
	CompositionScore int      `json:"composition_score" binding:"required,min=1,max=10"`
	CreativityScore  int      `json:"creativity_score" binding:"required,min=1,max=10"`
	Feedback         string   `json:"feedback" binding:"max=2000"`
	Answers          []string `json:"answers" binding:"max=3"`
	IsAnonymous      bool     `json:"is_anonymous"`
}

// ReviewResponse 익명 리뷰는 리뷰어 정보를 감춘 채 내려간다
type ReviewResponse struct {
	Review
	ReviewerName string `json:"reviewer_name"`
}

// NewReviewResponse 익명 여부에 따라 리뷰어 표시 이름을 결정한다
func NewReviewResponse(r *Review) *ReviewResponse {
	resp := &ReviewResponse{Review: *r, ReviewerName: "익명"}
	if !r.IsAnonymous && r.Reviewer != nil {
		resp.ReviewerName = r.Reviewer.DisplayName
	}
	if r.IsAnonymous {
		resp.Reviewer = nil
		resp.ReviewerID = 0
	}
	return resp
}
