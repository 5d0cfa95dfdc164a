package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lenspick/lenspick-backend/internal/app/model"
	"github.com/lenspick/lenspick-backend/internal/app/service"
	apperrors "github.com/lenspick/lenspick-backend/internal/errors"
	"github.com/lenspick/lenspick-backend/internal/middleware"
)

// AdminController 관리자 전용 컨트롤러
type AdminController struct {
	postService    service.PostService
	profileService service.ProfileService
	reportService  service.ReportService
}

func NewAdminController(
	postService service.PostService,
	profileService service.ProfileService,
	reportService service.ReportService,
) *AdminController {
	return &AdminController{
		postService:    postService,
		profileService: profileService,
		reportService:  reportService,
	}
}

// ForceLive 게시물 강제 공개
// POST /api/v1/admin/posts/:id/live
func (ctrl *AdminController) ForceLive(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 게시물 ID입니다")
		return
	}

	if err := ctrl.postService.ForceLive(uint(postID)); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			apperrors.NotFound(c, apperrors.PostNotFound, "게시물을 찾을 수 없습니다")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "force live")
		return
	}

	adminID, _ := middleware.GetUserID(c)
	log.Info("Post forced live by admin", map[string]interface{}{
		"post_id":  postID,
		"admin_id": adminID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "게시물이 공개되었습니다"})
}

// DeletePost 게시물 삭제
// DELETE /api/v1/admin/posts/:id
func (ctrl *AdminController) DeletePost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 게시물 ID입니다")
		return
	}

	if err := ctrl.postService.Delete(uint(postID)); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			apperrors.NotFound(c, apperrors.PostNotFound, "게시물을 찾을 수 없습니다")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "게시물이 삭제되었습니다"})
}

// ForceUnlock 프로필 게시 잠금 강제 해제
// POST /api/v1/admin/profiles/:id/unlock
func (ctrl *AdminController) ForceUnlock(c *gin.Context) {
	profileID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 프로필 ID입니다")
		return
	}

	if err := ctrl.profileService.ForceUnlock(uint(profileID)); err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			apperrors.NotFound(c, apperrors.ProfileNotFound, "프로필을 찾을 수 없습니다")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "force unlock")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "게시 잠금이 해제되었습니다"})
}

// ListLockedPosts 비공개 게시물 목록
// GET /api/v1/admin/posts?locked=true
func (ctrl *AdminController) ListLockedPosts(c *gin.Context) {
	var query model.PostListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "조회 조건이 올바르지 않습니다")
		return
	}

	if c.Query("locked") == "true" {
		live := false
		query.Live = &live
	}

	resp, err := ctrl.postService.List(&query)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list posts")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ActivityReport 활동 리포트 xlsx 다운로드
// GET /api/v1/admin/reports/activity
func (ctrl *AdminController) ActivityReport(c *gin.Context) {
	buf, filename, err := ctrl.reportService.ActivityReport()
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "activity report")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
