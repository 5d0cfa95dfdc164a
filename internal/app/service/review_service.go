package service

import (
	"errors"
	"fmt"

	"github.com/lenspick/lenspick-backend/internal/app/model"
	"github.com/lenspick/lenspick-backend/internal/app/repository"
	"github.com/lenspick/lenspick-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this post")
	ErrOwnPostReview       = errors.New("cannot review own post")
	ErrPostNotLive         = errors.New("post is not live")
	ErrTooManyAnswers      = errors.New("too many answers")
)

type ReviewService interface {
	Submit(reviewerProfileID, postID uint, req *model.CreateReviewRequest) (*model.Review, error)
	GetByPostID(postID uint) ([]*model.ReviewResponse, error)
	GetByReviewerID(reviewerProfileID uint, limit, offset int) ([]model.Review, int64, error)
}

type reviewService struct {
	reviewRepo   repository.ReviewRepository
	postRepo     repository.PostRepository
	profileRepo  repository.ProfileRepository
	notification NotificationService
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	postRepo repository.PostRepository,
	profileRepo repository.ProfileRepository,
	notification NotificationService,
) ReviewService {
	return &reviewService{
		reviewRepo:   reviewRepo,
		postRepo:     postRepo,
		profileRepo:  profileRepo,
		notification: notification,
	}
}

// Submit 리뷰 제출
// 리뷰 저장 후의 카운터 갱신들은 각각 독립된 단일 SQL 문으로 실행된다.
// 하나가 실패해도 저장된 리뷰는 되돌리지 않는다 (리뷰 자체가 원본 기록).
func (s *reviewService) Submit(reviewerProfileID, postID uint, req *model.CreateReviewRequest) (*model.Review, error) {
	post, err := s.postRepo.FindByID(postID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if post.ProfileID == reviewerProfileID {
		return nil, ErrOwnPostReview
	}
	if !post.IsLive {
		return nil, ErrPostNotLive
	}
	if len(req.Answers) > model.MaxPostQuestions {
		return nil, ErrTooManyAnswers
	}

	exists, err := s.reviewRepo.ExistsByPostAndReviewer(postID, reviewerProfileID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrReviewAlreadyExists
	}

	review := &model.Review{
		PostID:           postID,
		ReviewerID:       reviewerProfileID,
		TechnicalScore:   req.TechnicalScore,
		CompositionScore: req.CompositionScore,
		CreativityScore:  req.CreativityScore,
		Feedback:         req.Feedback,
		Answers:          req.Answers,
		IsAnonymous:      req.IsAnonymous,
	}

	if err := s.reviewRepo.Create(review); err != nil {
		// 동시 제출이 유니크 제약에 걸린 경우
		if s.alreadyExists(postID, reviewerProfileID) {
			return nil, ErrReviewAlreadyExists
		}
		logger.Error("Failed to create review", err, map[string]interface{}{
			"post_id":     postID,
			"reviewer_id": reviewerProfileID,
		})
		return nil, err
	}

	// 게시물 받은 리뷰 수 +1
	if err := s.postRepo.IncrementReceivedReviews(postID); err != nil {
		logger.Error("Failed to increment post review count", err, map[string]interface{}{
			"post_id":   postID,
			"review_id": review.ID,
		})
	}

	// 리뷰어의 잠금 해제 카운터 -1 (0 밑으로는 내려가지 않음)
	wasLocked := false
	if reviewer, err := s.profileRepo.FindByID(reviewerProfileID); err == nil {
		wasLocked = !reviewer.CanPost()
	}
	if err := s.profileRepo.DecrementReviewsToUnlock(reviewerProfileID); err != nil {
		logger.Error("Failed to decrement unlock counter", err, map[string]interface{}{
			"reviewer_id": reviewerProfileID,
			"review_id":   review.ID,
		})
	}
	if err := s.profileRepo.IncrementReviewCount(reviewerProfileID); err != nil {
		logger.Error("Failed to increment review count", err, map[string]interface{}{
			"reviewer_id": reviewerProfileID,
		})
	}

	// 작성자의 받은 평점 누계 갱신
	if err := s.profileRepo.AddReceivedRatings(
		post.ProfileID,
		req.TechnicalScore,
		req.CompositionScore,
		req.CreativityScore,
	); err != nil {
		logger.Error("Failed to add received ratings", err, map[string]interface{}{
			"author_profile_id": post.ProfileID,
			"review_id":         review.ID,
		})
	}

	logger.Info("Review submitted", map[string]interface{}{
		"review_id":   review.ID,
		"post_id":     postID,
		"reviewer_id": reviewerProfileID,
	})

	if s.notification != nil {
		id := postID
		s.notification.Notify(
			post.ProfileID,
			model.NotificationReviewReceived,
			fmt.Sprintf("'%s' 게시물에 새 리뷰가 도착했습니다.", post.Title),
			&id,
		)

		// 이번 리뷰로 잠금이 풀렸으면 알려줌
		if wasLocked {
			if reviewer, err := s.profileRepo.FindByID(reviewerProfileID); err == nil && reviewer.CanPost() {
				s.notification.Notify(
					reviewerProfileID,
					model.NotificationPostUnlocked,
					"리뷰 과제를 모두 마쳤습니다. 이제 게시물을 공개로 올릴 수 있어요!",
					nil,
				)
			}
		}
	}

	return review, nil
}

func (s *reviewService) GetByPostID(postID uint) ([]*model.ReviewResponse, error) {
	if _, err := s.postRepo.FindByID(postID, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByPostID(postID)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, model.NewReviewResponse(&reviews[i]))
	}
	return responses, nil
}

func (s *reviewService) GetByReviewerID(reviewerProfileID uint, limit, offset int) ([]model.Review, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.reviewRepo.FindByReviewerID(reviewerProfileID, limit, offset)
}

func (s *reviewService) alreadyExists(postID, reviewerID uint) bool {
	exists, err := s.reviewRepo.ExistsByPostAndReviewer(postID, reviewerID)
	return err == nil && exists
}
