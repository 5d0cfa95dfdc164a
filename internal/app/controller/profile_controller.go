package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lenspick/lenspick-backend/internal/app/model"
	"github.com/lenspick/lenspick-backend/internal/app/service"
	apperrors "github.com/lenspick/lenspick-backend/internal/errors"
	"github.com/lenspick/lenspick-backend/internal/middleware"
)

// ProfileController 프로필 컨트롤러
type ProfileController struct {
	profileService service.ProfileService
	postService    service.PostService
	reviewService  service.ReviewService
}

func NewProfileController(
	profileService service.ProfileService,
	postService service.PostService,
	reviewService service.ReviewService,
) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		postService:    postService,
		reviewService:  reviewService,
	}
}

// Me godoc
// @Summary 내 프로필 조회
// @Description 내 프로필을 조회합니다. 온보딩 필요 여부가 함께 내려갑니다
// @Tags profiles
// @Produce json
// @Success 200 {object} model.ProfileResponse
// @Security BearerAuth
// @Router /api/v1/profiles/me [get]
func (ctrl *ProfileController) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}
	email, _ := middleware.GetUserEmail(c)

	resp, err := ctrl.profileService.GetOrCreateByUserID(userID, email)
	if err != nil {
		if errors.Is(err, service.ErrSchemaMissing) {
			apperrors.SchemaMissing(c)
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get profile")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CompleteOnboarding godoc
// @Summary 온보딩 완료
// @Description 표시 이름과 관심 장르를 설정합니다. 리뷰 과제 카운터가 초기화됩니다
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body model.OnboardingRequest true "온보딩 요청"
// @Success 200 {object} model.Profile
// @Security BearerAuth
// @Router /api/v1/profiles/me/onboarding [post]
func (ctrl *ProfileController) CompleteOnboarding(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	var req model.OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ProfileInterestsRequired, "표시 이름과 관심 장르를 입력해주세요")
		return
	}

	profile, err := ctrl.profileService.CompleteOnboarding(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			apperrors.NotFound(c, apperrors.ProfileNotFound, "프로필을 찾을 수 없습니다")
		case errors.Is(err, service.ErrUnknownInterest):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "존재하지 않는 장르가 포함되어 있습니다")
		default:
			log.Error("Onboarding failed", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "complete onboarding")
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Update 내 프로필 수정
// PATCH /api/v1/profiles/me
func (ctrl *ProfileController) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	profile, err := ctrl.profileService.Update(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			apperrors.NotFound(c, apperrors.ProfileNotFound, "프로필을 찾을 수 없습니다")
		case errors.Is(err, service.ErrUnknownInterest):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "존재하지 않는 장르가 포함되어 있습니다")
		default:
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update profile")
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetByID 다른 사용자의 공개 프로필 조회
// GET /api/v1/profiles/:id
func (ctrl *ProfileController) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 프로필 ID입니다")
		return
	}

	resp, err := ctrl.profileService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			apperrors.NotFound(c, apperrors.ProfileNotFound, "프로필을 찾을 수 없습니다")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get profile")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MyPosts 내 게시물 목록
// GET /api/v1/profiles/me/posts
func (ctrl *ProfileController) MyPosts(c *gin.Context) {
	profileID, ok := middleware.GetProfileID(c)
	if !ok {
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	var query model.PostListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "조회 조건이 올바르지 않습니다")
		return
	}
	query.ProfileID = profileID
	query.Live = nil // 본인 게시물은 잠금 상태 포함 전체 조회

	resp, err := ctrl.postService.List(&query)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list posts")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MyReviews 내가 작성한 리뷰 목록
// GET /api/v1/profiles/me/reviews
func (ctrl *ProfileController) MyReviews(c *gin.Context) {
	profileID, ok := middleware.GetProfileID(c)
	if !ok {
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	reviews, total, err := ctrl.reviewService.GetByReviewerID(profileID, limit, offset)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":     reviews,
		"total_count": total,
	})
}
