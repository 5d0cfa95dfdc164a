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

// ReviewController 리뷰 컨트롤러
type ReviewController struct {
	reviewService service.ReviewService
}

// NewReviewController 리뷰 컨트롤러 생성자
func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// Submit godoc
// @Summary 리뷰 제출
// @Description 게시물에 구조화된 비평을 남깁니다. 제출 후 수정할 수 없습니다
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "게시물 ID"
// @Param request body model.CreateReviewRequest true "리뷰 요청"
// @Success 201 {object} model.Review
// @Failure 409 {object} apperrors.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/posts/{id}/reviews [post]
func (ctrl *ReviewController) Submit(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	profileID, ok := middleware.GetProfileID(c)
	if !ok {
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 게시물 ID입니다")
		return
	}

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ReviewInvalidScore, "점수는 1점부터 10점까지 입력할 수 있습니다")
		return
	}

	review, err := ctrl.reviewService.Submit(profileID, uint(postID), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			apperrors.NotFound(c, apperrors.PostNotFound, "게시물을 찾을 수 없습니다")
		case errors.Is(err, service.ErrOwnPostReview):
			apperrors.BadRequest(c, apperrors.ReviewOwnPost, "본인 게시물에는 리뷰를 남길 수 없습니다")
		case errors.Is(err, service.ErrPostNotLive):
			apperrors.BadRequest(c, apperrors.PostNotLive, "아직 공개되지 않은 게시물입니다")
		case errors.Is(err, service.ErrReviewAlreadyExists):
			apperrors.Conflict(c, apperrors.ReviewAlreadyExists, "이미 이 게시물에 리뷰를 남겼습니다")
		case errors.Is(err, service.ErrTooManyAnswers):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "답변은 질문 개수만큼만 남길 수 있습니다")
		default:
			log.Error("Review submission failed", err, map[string]interface{}{
				"post_id":     postID,
				"reviewer_id": profileID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "submit review")
		}
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ListByPost 게시물의 리뷰 목록 (익명 리뷰는 리뷰어 정보 제외)
// GET /api/v1/posts/:id/reviews
func (ctrl *ReviewController) ListByPost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 게시물 ID입니다")
		return
	}

	reviews, err := ctrl.reviewService.GetByPostID(uint(postID))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			apperrors.NotFound(c, apperrors.PostNotFound, "게시물을 찾을 수 없습니다")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
