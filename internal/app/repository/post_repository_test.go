package repository

import (
	"testing"

	"github.com/lenspick/lenspick-backend/internal/app/model"
	"github.com/lenspick/lenspick-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPostTest(t *testing.T) (*gorm.DB, PostRepository, *model.Profile) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	user := createTestUser(t, testDB, "poster@example.com")
	profile := &model.Profile{
		UserID:      user.ID,
		DisplayName: "작성자",
		Interests:   []string{"portrait"},
	}
	require.NoError(t, testDB.Create(profile).Error)

	return testDB, NewPostRepository(testDB), profile
}

func createTestPost(t *testing.T, repo PostRepository, profileID uint, categories []string, isLive bool) *model.Post {
	post := &model.Post{
		ProfileID:  profileID,
		Title:      "테스트 게시물",
		Categories: categories,
		ImageURLs:  []string{"https://cdn.example.com/a.jpg"},
		IsLive:     isLive,
	}
	require.NoError(t, repo.Create(post))
	return post
}

func TestPostRepository_Create(t *testing.T) {
	testDB, repo, profile := setupPostTest(t)
	defer db.CleanupTestDB(testDB)

	post := createTestPost(t, repo, profile.ID, []string{"portrait", "street"}, true)

	assert.NotZero(t, post.ID)
	require.NotNil(t, post.Profile)
	assert.Equal(t, "작성자", post.Profile.DisplayName)
	assert.Equal(t, 0, post.ReceivedReviews)
}

func TestPostRepository_List_Filters(t *testing.T) {
	testDB, repo, profile := setupPostTest(t)
	defer db.CleanupTestDB(testDB)

	createTestPost(t, repo, profile.ID, []string{"portrait"}, true)
	createTestPost(t, repo, profile.ID, []string{"landscape"}, true)
	createTestPost(t, repo, profile.ID, []string{"portrait"}, false)

	t.Run("By category", func(t *testing.T) {
		posts, total, err := repo.List(&model.PostListQuery{
			Category: "portrait",
			Page:     1,
			PageSize: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, posts, 2)
	})

	t.Run("Live only", func(t *testing.T) {
		live := true
		posts, total, err := repo.List(&model.PostListQuery{
			Live:     &live,
			Page:     1,
			PageSize: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		for _, p := range posts {
			assert.True(t, p.IsLive)
		}
	})

	t.Run("Locked only", func(t *testing.T) {
		live := false
		_, total, err := repo.List(&model.PostListQuery{
			Live:     &live,
			Page:     1,
			PageSize: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})
}

func TestPostRepository_IncrementReceivedReviews(t *testing.T) {
	testDB, repo, profile := setupPostTest(t)
	defer db.CleanupTestDB(testDB)

	post := createTestPost(t, repo, profile.ID, []string{"portrait"}, true)

	require.NoError(t, repo.IncrementReceivedReviews(post.ID))
	require.NoError(t, repo.IncrementReceivedReviews(post.ID))

	found, err := repo.FindByID(post.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 2, found.ReceivedReviews)
}

func TestPostRepository_SetLive(t *testing.T) {
	testDB, repo, profile := setupPostTest(t)
	defer db.CleanupTestDB(testDB)

	post := createTestPost(t, repo, profile.ID, []string{"portrait"}, false)
	require.NoError(t, repo.SetLive(post.ID))

	found, err := repo.FindByID(post.ID, false)
	require.NoError(t, err)
	assert.True(t, found.IsLive)
}

func TestPostRepository_ListByCategories(t *testing.T) {
	testDB, repo, profile := setupPostTest(t)
	defer db.CleanupTestDB(testDB)

	other := createTestUser(t, testDB, "other@example.com")
	otherProfile := &model.Profile{UserID: other.ID, DisplayName: "다른작가"}
	require.NoError(t, testDB.Create(otherProfile).Error)

	matching := createTestPost(t, repo, otherProfile.ID, []string{"portrait", "night"}, true)
	createTestPost(t, repo, otherProfile.ID, []string{"landscape"}, true)
	createTestPost(t, repo, otherProfile.ID, []string{"portrait"}, false) // 비공개는 제외
	createTestPost(t, repo, profile.ID, []string{"portrait"}, true)      // 본인 게시물 제외

	posts, err := repo.ListByCategories([]string{"portrait", "macro"}, profile.ID, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, matching.ID, posts[0].ID)
}

func TestPostRepository_SumReceivedReviews(t *testing.T) {
	testDB, repo, profile := setupPostTest(t)
	defer db.CleanupTestDB(testDB)

	a := createTestPost(t, repo, profile.ID, []string{"portrait"}, true)
	b := createTestPost(t, repo, profile.ID, []string{"street"}, true)

	require.NoError(t, repo.IncrementReceivedReviews(a.ID))
	require.NoError(t, repo.IncrementReceivedReviews(a.ID))
	require.NoError(t, repo.IncrementReceivedReviews(b.ID))

	sum, err := repo.SumReceivedReviews(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), sum)

	// 게시물 없는 프로필은 0
	sum, err = repo.SumReceivedReviews(999)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sum)
}
