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

// PostController 게시물 컨트롤러
type PostController struct {
	postService service.PostService
}

// NewPostController 게시물 컨트롤러 생성자
func NewPostController(postService service.PostService) *PostController {
	return &PostController{postService: postService}
}

// Create godoc
// @Summary 게시물 생성
// @Description 사진과 함께 게시물을 올립니다 (multipart, 이미지 최대 3장)
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} model.Post
// @Failure 400 {object} apperrors.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/posts [post]
func (ctrl *PostController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	profileID, ok := middleware.GetProfileID(c)
	if !ok {
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	var req model.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "multipart 형식이 올바르지 않습니다")
		return
	}
	images := form.File["images"]

	post, err := ctrl.postService.Create(c.Request.Context(), profileID, &req, images)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImagesRequired):
			apperrors.BadRequest(c, apperrors.PostImagesRequired, "이미지를 1장 이상 올려주세요")
		case errors.Is(err, service.ErrTooManyImages):
			apperrors.BadRequest(c, apperrors.PostTooManyImages, "이미지는 최대 3장까지 올릴 수 있습니다")
		case errors.Is(err, service.ErrTooManyQuestions):
			apperrors.BadRequest(c, apperrors.PostTooManyQuestions, "질문은 최대 3개까지 등록할 수 있습니다")
		case errors.Is(err, service.ErrInvalidImage):
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "JPEG, PNG, WEBP 이미지만 20MB 이하로 올릴 수 있습니다")
		case errors.Is(err, service.ErrImageUploadFail):
			log.Error("Post creation aborted on upload failure", err, map[string]interface{}{
				"profile_id": profileID,
			})
			apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.UploadFailed, "이미지 업로드에 실패했습니다. 다시 시도해주세요")
		default:
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create post")
		}
		return
	}

	c.JSON(http.StatusCreated, post)
}

// List godoc
// @Summary 게시물 목록
// @Description 공개된 게시물 피드를 조회합니다
// @Tags posts
// @Produce json
// @Param category query string false "장르 슬러그"
// @Param page query int false "페이지"
// @Success 200 {object} model.PostListResponse
// @Router /api/v1/posts [get]
func (ctrl *PostController) List(c *gin.Context) {
	var query model.PostListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "조회 조건이 올바르지 않습니다")
		return
	}

	// 공개 피드는 공개 게시물만 보여줌
	live := true
	query.Live = &live

	resp, err := ctrl.postService.List(&query)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list posts")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Recommended 관심 장르 기반 추천 피드
// GET /api/v1/posts/recommended
func (ctrl *PostController) Recommended(c *gin.Context) {
	profileID, ok := middleware.GetProfileID(c)
	if !ok {
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	posts, err := ctrl.postService.Recommended(profileID, limit)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "recommended posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetByID 게시물 상세 조회 (리뷰 포함)
// GET /api/v1/posts/:id
func (ctrl *PostController) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 게시물 ID입니다")
		return
	}

	post, err := ctrl.postService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			apperrors.NotFound(c, apperrors.PostNotFound, "게시물을 찾을 수 없습니다")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get post")
		return
	}

	// 비공개 게시물은 작성자 본인과 관리자만 볼 수 있음
	if !post.IsLive {
		profileID, _ := middleware.GetProfileID(c)
		role, _ := middleware.GetUserRole(c)
		if post.ProfileID != profileID && role != model.RoleAdmin {
			apperrors.NotFound(c, apperrors.PostNotFound, "게시물을 찾을 수 없습니다")
			return
		}
	}

	c.JSON(http.StatusOK, model.NewPostDetailResponse(post))
}
