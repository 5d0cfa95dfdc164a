package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lenspick/lenspick-backend/internal/app/model"
	"github.com/lenspick/lenspick-backend/internal/app/service"
	"github.com/lenspick/lenspick-backend/internal/errors"
)

const (
	ProfileIDKey   = "profile_id"
	ProfileKey     = "profile"
)

type ProfileMiddleware struct {
	profileService service.ProfileService
}

func NewProfileMiddleware(profileService service.ProfileService) *ProfileMiddleware {
	return &ProfileMiddleware{profileService: profileService}
}

// RequireProfile 인증된 사용자의 프로필을 확보해 컨텍스트에 넣음
// 프로필이 없으면 최소 프로필을 만들어서라도 진행시킨다
func (m *ProfileMiddleware) RequireProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		userID, ok := GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "로그인이 필요합니다")
			c.Abort()
			return
		}
		email, _ := GetUserEmail(c)

		resp, err := m.profileService.GetOrCreateByUserID(userID, email)
		if err != nil {
			if err == service.ErrSchemaMissing {
				errors.SchemaMissing(c)
				c.Abort()
				return
			}
			log.Error("Failed to resolve profile", err, map[string]interface{}{
				"user_id": userID,
			})
			errors.InternalError(c, "프로필을 불러오지 못했습니다")
			c.Abort()
			return
		}

		c.Set(ProfileIDKey, resp.Profile.ID)
		c.Set(ProfileKey, &resp.Profile)
		c.Next()
	}
}

// RequireOnboarded 관심 장르 선택을 마친 프로필만 통과시킴
// 게시물 작성과 리뷰 제출 경로에 붙는다
func (m *ProfileMiddleware) RequireOnboarded() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := GetProfile(c)
		if !ok {
			errors.Unauthorized(c, "로그인이 필요합니다")
			c.Abort()
			return
		}

		if profile.OnboardingRequired() {
			errors.RespondWithError(c, http.StatusForbidden,
				errors.ProfileOnboardingRequired, "관심 장르를 먼저 선택해주세요")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetProfileID extracts profile ID from context
func GetProfileID(c *gin.Context) (uint, bool) {
	profileID, exists := c.Get(ProfileIDKey)
	if !exists {
		return 0, false
	}
	return profileID.(uint), true
}

// GetProfile extracts the resolved profile from context
func GetProfile(c *gin.Context) (*model.Profile, bool) {
	profile, exists := c.Get(ProfileKey)
	if !exists {
		return nil, false
	}
	return profile.(*model.Profile), true
}
