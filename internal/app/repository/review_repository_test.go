package repository

import (
	"testing"

	"github.com/lenspick/lenspick-backend/internal/app/model"
	"github.com/lenspick/lenspick-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReviewTest(t *testing.T) (*gorm.DB, ReviewRepository, *model.Post, *model.Profile) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	author := createTestUser(t, testDB, "author@example.com")
	authorProfile := &model.Profile{UserID: author.ID, DisplayName: "작가"}
	require.NoError(t, testDB.Create(authorProfile).Error)

	reviewer := createTestUser(t, testDB, "reviewer@example.com")
	reviewerProfile := &model.Profile{UserID: reviewer.ID, DisplayName: "리뷰어"}
	require.NoError(t, testDB.Create(reviewerProfile).Error)

	post := &model.Post{
		ProfileID:  authorProfile.ID,
		Title:      "리뷰 대상",
		Categories: []string{"portrait"},
		ImageURLs:  []string{"https://cdn.example.com/a.jpg"},
		IsLive:     true,
	}
	require.NoError(t, testDB.Create(post).Error)

	return testDB, NewReviewRepository(testDB), post, reviewerProfile
}

func TestReviewRepository_Create(t *testing.T) {
	testDB, repo, post, reviewer := setupReviewTest(t)
	defer db.CleanupTestDB(testDB)

	review := &model.Review{
		PostID:           post.ID,
		ReviewerID:       reviewer.ID,
		TechnicalScore:   7,
		CompositionScore: 8,
		CreativityScore:  6,
		Feedback:         "구도가 인상적입니다",
		Answers:          []string{"노출이 살짝 어둡습니다"},
	}
	require.NoError(t, repo.Create(review))

	assert.NotZero(t, review.ID)
	require.NotNil(t, review.Reviewer)
	assert.Equal(t, "리뷰어", review.Reviewer.DisplayName)
}

func TestReviewRepository_DuplicateRejected(t *testing.T) {
	testDB, repo, post, reviewer := setupReviewTest(t)
	defer db.CleanupTestDB(testDB)

	first := &model.Review{
		PostID: post.ID, ReviewerID: reviewer.ID,
		TechnicalScore: 5, CompositionScore: 5, CreativityScore: 5,
	}
	require.NoError(t, repo.Create(first))

	// 같은 (게시물, 리뷰어) 쌍은 유니크 제약으로 거부됨
	second := &model.Review{
		PostID: post.ID, ReviewerID: reviewer.ID,
		TechnicalScore: 9, CompositionScore: 9, CreativityScore: 9,
	}
	assert.Error(t, repo.Create(second))
}

func TestReviewRepository_ExistsByPostAndReviewer(t *testing.T) {
	testDB, repo, post, reviewer := setupReviewTest(t)
	defer db.CleanupTestDB(testDB)

	exists, err := repo.ExistsByPostAndReviewer(post.ID, reviewer.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Create(&model.Review{
		PostID: post.ID, ReviewerID: reviewer.ID,
		TechnicalScore: 5, CompositionScore: 5, CreativityScore: 5,
	}))

	exists, err = repo.ExistsByPostAndReviewer(post.ID, reviewer.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestReviewRepository_FindByPostID(t *testing.T) {
	testDB, repo, post, reviewer := setupReviewTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(&model.Review{
		PostID: post.ID, ReviewerID: reviewer.ID,
		TechnicalScore: 5, CompositionScore: 6, CreativityScore: 7,
	}))

	reviews, err := repo.FindByPostID(post.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	require.NotNil(t, reviews[0].Reviewer)
	assert.Equal(t, "리뷰어", reviews[0].Reviewer.DisplayName)
}
