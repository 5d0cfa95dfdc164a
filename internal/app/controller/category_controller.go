package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lenspick/lenspick-backend/internal/app/service"
	apperrors "github.com/lenspick/lenspick-backend/internal/errors"
)

// CategoryController 장르 컨트롤러
type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// GetAll 전체 장르 목록
// GET /api/v1/categories
func (ctrl *CategoryController) GetAll(c *gin.Context) {
	categories, err := ctrl.categoryService.GetAll()
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
