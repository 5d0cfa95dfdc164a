package service

import (
	"testing"

	"github.com/lenspick/lenspick-backend/internal/app/model"
	"github.com/lenspick/lenspick-backend/internal/app/repository"
	"github.com/lenspick/lenspick-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type reviewTestEnv struct {
	svc      ReviewService
	testDB   *gorm.DB
	author   *model.Profile
	reviewer *model.Profile
	post     *model.Post
}

func setupReviewServiceTest(t *testing.T, reviewerRemaining int) *reviewTestEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	authorUser := seedUser(t, testDB, "author@example.com")
	author := &model.Profile{
		UserID: authorUser.ID, DisplayName: "작가",
		Interests: []string{"portrait"},
	}
	require.NoError(t, testDB.Create(author).Error)

	reviewerUser := seedUser(t, testDB, "reviewer@example.com")
	reviewer := &model.Profile{
		UserID: reviewerUser.ID, DisplayName: "리뷰어",
		Interests:       []string{"portrait"},
		ReviewsToUnlock: reviewerRemaining,
	}
	require.NoError(t, testDB.Create(reviewer).Error)

	post := &model.Post{
		ProfileID:  author.ID,
		Title:      "골목 풍경",
		Categories: []string{"street"},
		ImageURLs:  []string{"https://cdn.example.com/a.jpg"},
		Questions:  []string{"노출은 어떤가요?"},
		IsLive:     true,
	}
	require.NoError(t, testDB.Create(post).Error)

	reviewRepo := repository.NewReviewRepository(testDB)
	postRepo := repository.NewPostRepository(testDB)
	profileRepo := repository.NewProfileRepository(testDB)
	notificationRepo := repository.NewNotificationRepository(testDB)
	notificationSvc := NewNotificationService(notificationRepo, nil)

	return &reviewTestEnv{
		svc:      NewReviewService(reviewRepo, postRepo, profileRepo, notificationSvc),
		testDB:   testDB,
		author:   author,
		reviewer: reviewer,
		post:     post,
	}
}

func validReviewRequest() *model.CreateReviewRequest {
	return &model.CreateReviewRequest{
		TechnicalScore:   7,
		CompositionScore: 8,
		CreativityScore:  9,
		Feedback:         "빛 처리가 좋습니다",
		Answers:          []string{"노출이 살짝 어둡습니다"},
	}
}

func TestReviewService_Submit(t *testing.T) {
	env := setupReviewServiceTest(t, 1)

	review, err := env.svc.Submit(env.reviewer.ID, env.post.ID, validReviewRequest())
	require.NoError(t, err)
	assert.NotZero(t, review.ID)

	// 게시물 받은 리뷰 수 +1
	var post model.Post
	require.NoError(t, env.testDB.First(&post, env.post.ID).Error)
	assert.Equal(t, 1, post.ReceivedReviews)

	// 리뷰어 카운터: 잠금 해제 -1, 작성 수 +1
	var reviewer model.Profile
	require.NoError(t, env.testDB.First(&reviewer, env.reviewer.ID).Error)
	assert.Equal(t, 0, reviewer.ReviewsToUnlock)
	assert.Equal(t, 1, reviewer.ReviewCount)
	assert.True(t, reviewer.CanPost())

	// 작성자 평점 누계
	var author model.Profile
	require.NoError(t, env.testDB.First(&author, env.author.ID).Error)
	assert.Equal(t, int64(7), author.TechnicalTotal)
	assert.Equal(t, int64(8), author.CompositionTotal)
	assert.Equal(t, int64(9), author.CreativityTotal)

	// 작성자에게 리뷰 수신 알림, 리뷰어에게 잠금 해제 알림
	var notifications []model.Notification
	require.NoError(t, env.testDB.Order("id").Find(&notifications).Error)
	require.Len(t, notifications, 2)
	assert.Equal(t, env.author.ID, notifications[0].ProfileID)
	assert.Equal(t, model.NotificationReviewReceived, notifications[0].Type)
	assert.Equal(t, env.reviewer.ID, notifications[1].ProfileID)
	assert.Equal(t, model.NotificationPostUnlocked, notifications[1].Type)
}

func TestReviewService_Submit_OwnPost(t *testing.T) {
	env := setupReviewServiceTest(t, 3)

	_, err := env.svc.Submit(env.author.ID, env.post.ID, validReviewRequest())
	assert.ErrorIs(t, err, ErrOwnPostReview)
}

func TestReviewService_Submit_NotLive(t *testing.T) {
	env := setupReviewServiceTest(t, 3)

	locked := &model.Post{
		ProfileID: env.author.ID,
		Title:     "비공개",
		ImageURLs: []string{"https://cdn.example.com/b.jpg"},
		IsLive:    false,
	}
	require.NoError(t, env.testDB.Create(locked).Error)

	_, err := env.svc.Submit(env.reviewer.ID, locked.ID, validReviewRequest())
	assert.ErrorIs(t, err, ErrPostNotLive)
}

func TestReviewService_Submit_Duplicate(t *testing.T) {
	env := setupReviewServiceTest(t, 3)

	_, err := env.svc.Submit(env.reviewer.ID, env.post.ID, validReviewRequest())
	require.NoError(t, err)

	_, err = env.svc.Submit(env.reviewer.ID, env.post.ID, validReviewRequest())
	assert.ErrorIs(t, err, ErrReviewAlreadyExists)

	// 중복 제출은 카운터를 건드리지 않음
	var post model.Post
	require.NoError(t, env.testDB.First(&post, env.post.ID).Error)
	assert.Equal(t, 1, post.ReceivedReviews)
}

func TestReviewService_Submit_PostNotFound(t *testing.T) {
	env := setupReviewServiceTest(t, 3)

	_, err := env.svc.Submit(env.reviewer.ID, 9999, validReviewRequest())
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestReviewService_Submit_CounterFloorsAtZero(t *testing.T) {
	// 이미 잠금이 풀린 리뷰어가 리뷰해도 카운터는 0 유지
	env := setupReviewServiceTest(t, 0)

	_, err := env.svc.Submit(env.reviewer.ID, env.post.ID, validReviewRequest())
	require.NoError(t, err)

	var reviewer model.Profile
	require.NoError(t, env.testDB.First(&reviewer, env.reviewer.ID).Error)
	assert.Equal(t, 0, reviewer.ReviewsToUnlock)

	// 잠금 해제 알림은 중복 발송되지 않음
	var count int64
	require.NoError(t, env.testDB.Model(&model.Notification{}).
		Where("type = ?", model.NotificationPostUnlocked).
		Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestReviewService_Submit_TooManyAnswers(t *testing.T) {
	env := setupReviewServiceTest(t, 3)

	req := validReviewRequest()
	req.Answers = []string{"하나", "둘", "셋", "넷"}

	_, err := env.svc.Submit(env.reviewer.ID, env.post.ID, req)
	assert.ErrorIs(t, err, ErrTooManyAnswers)
}

func TestReviewService_GetByPostID_AnonymousHidden(t *testing.T) {
	env := setupReviewServiceTest(t, 3)

	req := validReviewRequest()
	req.IsAnonymous = true
	_, err := env.svc.Submit(env.reviewer.ID, env.post.ID, req)
	require.NoError(t, err)

	responses, err := env.svc.GetByPostID(env.post.ID)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "익명", responses[0].ReviewerName)
	assert.Nil(t, responses[0].Reviewer)
	assert.Zero(t, responses[0].ReviewerID)
}
