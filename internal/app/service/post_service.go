package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/lenspick/lenspick-backend/internal/app/model"
	"github.com/lenspick/lenspick-backend/internal/app/repository"
	"github.com/lenspick/lenspick-backend/internal/storage"
	"github.com/lenspick/lenspick-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrTooManyImages    = errors.New("too many images")
	ErrImagesRequired   = errors.New("at least one image is required")
	ErrTooManyQuestions = errors.New("too many questions")
	ErrInvalidImage     = errors.New("invalid image file")
	ErrImageUploadFail  = errors.New("image upload failed")
)

// 업로드 허용 이미지 형식
var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

const maxImageSize = 20 << 20 // 20MB

type PostService interface {
	Create(ctx context.Context, profileID uint, req *model.CreatePostRequest, images []*multipart.FileHeader) (*model.Post, error)
	GetByID(id uint) (*model.Post, error)
	List(query *model.PostListQuery) (*model.PostListResponse, error)
	Recommended(profileID uint, limit int) ([]model.Post, error)
	ForceLive(postID uint) error
	Delete(postID uint) error
}

type postService struct {
	postRepo    repository.PostRepository
	profileRepo repository.ProfileRepository
	imageStore  storage.ImageStore
}

func NewPostService(
	postRepo repository.PostRepository,
	profileRepo repository.ProfileRepository,
	imageStore storage.ImageStore,
) PostService {
	return &postService{
		postRepo:    postRepo,
		profileRepo: profileRepo,
		imageStore:  imageStore,
	}
}

// Create 게시물 생성
// 이미지 개수 검증은 업로드 시작 전에 끝내고, 업로드가 하나라도 실패하면
// 게시물 행을 만들지 않는다. 공개 여부는 생성 시점의 잠금 상태로만 결정됨
func (s *postService) Create(ctx context.Context, profileID uint, req *model.CreatePostRequest, images []*multipart.FileHeader) (*model.Post, error) {
	if len(images) == 0 {
		return nil, ErrImagesRequired
	}
	if len(images) > model.MaxPostImages {
		return nil, ErrTooManyImages
	}
	if len(req.Questions) > model.MaxPostQuestions {
		return nil, ErrTooManyQuestions
	}

	for _, image := range images {
		if err := storage.ValidateFileSize(image.Size, maxImageSize); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidImage, err.Error())
		}
		contentType := image.Header.Get("Content-Type")
		if err := storage.ValidateContentType(contentType, allowedImageTypes); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidImage, err.Error())
		}
	}

	profile, err := s.profileRepo.FindByID(profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	// 이미지는 순서대로 업로드함
	imageURLs := make([]string, 0, len(images))
	for _, image := range images {
		file, err := image.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrImageUploadFail, err.Error())
		}

		url, err := s.imageStore.Upload(ctx, "posts", image.Filename, image.Header.Get("Content-Type"), file)
		file.Close()
		if err != nil {
			logger.Error("Image upload failed, aborting post creation", err, map[string]interface{}{
				"profile_id": profileID,
				"filename":   image.Filename,
				"uploaded":   len(imageURLs),
			})
			return nil, fmt.Errorf("%w: %s", ErrImageUploadFail, err.Error())
		}
		imageURLs = append(imageURLs, url)
	}

	requiredReviews := req.RequiredReviews
	if requiredReviews <= 0 {
		requiredReviews = model.DefaultRequiredReviews
	}
	if requiredReviews > model.MaxRequiredReviews {
		requiredReviews = model.MaxRequiredReviews
	}

	post := &model.Post{
		ProfileID:       profileID,
		Title:           req.Title,
		Caption:         req.Caption,
		Categories:      req.Categories,
		ImageURLs:       imageURLs,
		Questions:       req.Questions,
		IsLive:          profile.CanPost(),
		RequiredReviews: requiredReviews,
	}

	if err := s.postRepo.Create(post); err != nil {
		logger.Error("Failed to create post", err, map[string]interface{}{
			"profile_id": profileID,
		})
		return nil, err
	}

	logger.Info("Post created", map[string]interface{}{
		"post_id":    post.ID,
		"profile_id": profileID,
		"is_live":    post.IsLive,
		"images":     len(imageURLs),
	})
	return post, nil
}

func (s *postService) GetByID(id uint) (*model.Post, error) {
	post, err := s.postRepo.FindByID(id, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) List(query *model.PostListQuery) (*model.PostListResponse, error) {
	posts, total, err := s.postRepo.List(query)
	if err != nil {
		return nil, err
	}
	return &model.PostListResponse{
		Posts:      posts,
		TotalCount: total,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}, nil
}

// Recommended 관심 장르와 겹치는 공개 게시물 추천
// 리뷰를 덜 받은 게시물이 먼저 온다
func (s *postService) Recommended(profileID uint, limit int) ([]model.Post, error) {
	profile, err := s.profileRepo.FindByID(profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.postRepo.ListByCategories(profile.Interests, profile.ID, limit)
}

// ForceLive 관리자 전용 공개 전환
func (s *postService) ForceLive(postID uint) error {
	if _, err := s.postRepo.FindByID(postID, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return s.postRepo.SetLive(postID)
}

// Delete 관리자 전용 게시물 삭제 (소프트 삭제)
func (s *postService) Delete(postID uint) error {
	if _, err := s.postRepo.FindByID(postID, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return s.postRepo.Delete(postID)
}
