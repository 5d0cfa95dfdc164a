package model

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultReviewsToUnlock 신규(또는 온보딩 재설정) 프로필의 초기 리뷰 과제 수
const DefaultReviewsToUnlock = 3

// Profile 사진 비평 서비스의 사용자 프로필
// 관심 장르와 평점 누계, 게시 잠금 해제 카운터를 가짐
type Profile struct {
	ID          uint                         `gorm:"primarykey" json:"id"`            // 프로필 ID
	UserID      uint                         `gorm:"uniqueIndex;not null" json:"user_id"` // 계정 ID
	DisplayName string                       `gorm:"not null" json:"display_name"`    // 표시 이름
	Interests   datatypes.JSONSlice[string]  `json:"interests"`                       // 관심 장르 슬러그 목록
	Bio         string                       `gorm:"type:text" json:"bio"`            // 자기 소개

	// 받은 평가 누계 (리뷰 1건당 각 항목 점수가 더해짐)
	TechnicalTotal   int64 `gorm:"not null;default:0" json:"technical_total"`   // 기술 점수 누계
	CompositionTotal int64 `gorm:"not null;default:0" json:"composition_total"` // 구도 점수 누계
	CreativityTotal  int64 `gorm:"not null;default:0" json:"creativity_total"`  // 창의성 점수 누계

	ReviewCount     int `gorm:"not null;default:0" json:"review_count"`                  // 작성한 리뷰 수
	ReviewsToUnlock int `gorm:"not null" json:"reviews_to_unlock"`                       // 게시 잠금 해제까지 남은 리뷰 수 (생성 시 코드에서 설정)

	CreatedAt time.Time `json:"created_at"` // 생성 시각
	UpdatedAt time.Time `json:"updated_at"` // 수정 시각

	User *User `gorm:"foreignKey:UserID" json:"-"` // 연결된 계정
}

func (Profile) TableName() string {
	return "profiles"
}

// OnboardingRequired 관심 장르를 아직 선택하지 않았는지 여부
func (p *Profile) OnboardingRequired() bool {
	return len(p.Interests) == 0
}

// CanPost 게시 잠금이 해제되었는지 여부
func (p *Profile) CanPost() bool {
	return p.ReviewsToUnlock <= 0
}

// OnboardingRequest 온보딩(관심 장르 선택) 요청
type OnboardingRequest struct {
	DisplayName string   `json:"display_name" binding:"required,min=2,max=30"`
	Interests   []string `json:"interests" binding:"required,min=1"`
	Bio         string   `json:"bio" binding:"max=500"`
}

// UpdateProfileRequest 프로필 수정 요청
type UpdateProfileRequest struct {
	DisplayName *string  `json:"display_name" binding:"omitempty,min=2,max=30"`
	Interests   []string `json:"interests"`
	Bio         *string  `json:"bio" binding:"omitempty,max=500"`
}

// ProfileResponse 프로필 조회 응답
type ProfileResponse struct {
	Profile
	OnboardingNeeded bool    `json:"onboarding_required"` // 온보딩 필요 여부
	AvgTechnical     float64 `json:"avg_technical"`       // 기술 평균 점수
	AvgComposition   float64 `json:"avg_composition"`     // 구도 평균 점수
	AvgCreativity    float64 `json:"avg_creativity"`      // 창의성 평균 점수
}

// NewProfileResponse 누계와 받은 리뷰 수로 평균을 계산해 응답을 만든다
func NewProfileResponse(p *Profile, receivedReviews int64) *ProfileResponse {
	resp := &ProfileResponse{
		Profile:          *p,
		OnboardingNeeded: p.OnboardingRequired(),
	}
	if receivedReviews > 0 {
		resp.AvgTechnical = float64(p.TechnicalTotal) / float64(receivedReviews)
		resp.AvgComposition = float64(p.CompositionTotal) / float64(receivedReviews)
		resp.AvgCreativity = float64(p.CreativityTotal) / float64(receivedReviews)
	}
	return resp
}
