package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/lenspick/lenspick-backend/internal/errors"
	"github.com/lenspick/lenspick-backend/internal/storage"
	"github.com/lenspick/lenspick-backend/pkg/logger"
)

// 게시물 사진은 서버 경유 업로드만 허용되므로
// 프리사인 URL은 프로필 아바타 용도로만 발급한다
var presignedFolders = map[string]bool{
	"avatars": true,
}

type UploadController struct {
	storage storage.ImageStore
}

func NewUploadController(store storage.ImageStore) *UploadController {
	return &UploadController{
		storage: store,
	}
}

type GeneratePresignedURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Folder      string `json:"folder"` // 생략하면 avatars
}

// GeneratePresignedURL 클라이언트 직접 업로드용 프리사인 URL 발급
// POST /api/v1/upload/presigned-url
func (ctrl *UploadController) GeneratePresignedURL(c *gin.Context) {
	var req GeneratePresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "요청 형식이 올바르지 않습니다")
		return
	}

	allowedTypes := []string{
		"image/jpeg",
		"image/jpg",
		"image/png",
		"image/webp",
	}
	if err := storage.ValidateContentType(req.ContentType, allowedTypes); err != nil {
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType,
			"JPEG, PNG, WEBP 이미지만 업로드할 수 있습니다")
		return
	}

	folder := req.Folder
	if folder == "" {
		folder = "avatars"
	}
	if !presignedFolders[folder] {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "허용되지 않은 업로드 경로입니다")
		return
	}

	response, err := ctrl.storage.GeneratePresignedURL(req.Filename, req.ContentType, folder)
	if err != nil {
		logger.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"filename":     req.Filename,
			"content_type": req.ContentType,
			"folder":       folder,
		})
		apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.UploadFailed,
			"업로드 URL 발급에 실패했습니다. 잠시 후 다시 시도해주세요")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upload_url": response.UploadURL,
		"file_url":   response.FileURL,
		"key":        response.Key,
	})
}
