package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/lenspick/lenspick-backend/internal/app/model"
	"github.com/lenspick/lenspick-backend/internal/app/repository"
	"github.com/lenspick/lenspick-backend/internal/db"
	"github.com/lenspick/lenspick-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeImageStore 업로드 호출을 기록하고 지정 순번에서 실패를 흉내냄
type fakeImageStore struct {
	uploads []string
	failAt  int // 1부터 시작, 0이면 항상 성공
}

func (f *fakeImageStore) Upload(_ context.Context, folder, filename, _ string, _ io.Reader) (string, error) {
	if f.failAt > 0 && len(f.uploads)+1 == f.failAt {
		return "", fmt.Errorf("simulated upload failure")
	}
	url := fmt.Sprintf("https://cdn.example.com/%s/%s", folder, filename)
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakeImageStore) GeneratePresignedURL(filename, _, folder string) (*storage.PresignedURLResponse, error) {
	return &storage.PresignedURLResponse{
		UploadURL: fmt.Sprintf("https://upload.example.com/%s/%s", folder, filename),
		FileURL:   fmt.Sprintf("https://cdn.example.com/%s/%s", folder, filename),
		Key:       fmt.Sprintf("%s/%s", folder, filename),
	}, nil
}

func makeImageFiles(t *testing.T, count int) []*multipart.FileHeader {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for i := 0; i < count; i++ {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="images"; filename="photo%d.jpg"`, i))
		header.Set("Content-Type", "image/jpeg")

		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-jpeg-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["images"]
}

func setupPostServiceTest(t *testing.T, store *fakeImageStore, remaining int) (PostService, *gorm.DB, *model.Profile) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	user := seedUser(t, testDB, "poster@example.com")
	profile := &model.Profile{
		UserID:          user.ID,
		DisplayName:     "작성자",
		Interests:       []string{"portrait", "night"},
		ReviewsToUnlock: remaining,
	}
	require.NoError(t, testDB.Create(profile).Error)

	postRepo := repository.NewPostRepository(testDB)
	profileRepo := repository.NewProfileRepository(testDB)

	return NewPostService(postRepo, profileRepo, store), testDB, profile
}

func TestPostService_Create_LockedAuthor(t *testing.T) {
	store := &fakeImageStore{}
	svc, _, profile := setupPostServiceTest(t, store, 2)

	post, err := svc.Create(context.Background(), profile.ID, &model.CreatePostRequest{
		Title:      "새벽 골목",
		Categories: []string{"street"},
		Questions:  []string{"구도가 어떤가요?"},
	}, makeImageFiles(t, 2))
	require.NoError(t, err)

	// 리뷰 과제가 남은 작성자의 게시물은 비공개 상태로 생성됨
	assert.False(t, post.IsLive)
	assert.Len(t, []string(post.ImageURLs), 2)
	assert.Len(t, store.uploads, 2)
}

func TestPostService_Create_UnlockedAuthorGoesLive(t *testing.T) {
	store := &fakeImageStore{}
	svc, _, profile := setupPostServiceTest(t, store, 0)

	post, err := svc.Create(context.Background(), profile.ID, &model.CreatePostRequest{
		Title:      "한강 야경",
		Categories: []string{"night"},
	}, makeImageFiles(t, 1))
	require.NoError(t, err)
	assert.True(t, post.IsLive)
}

func TestPostService_Create_RequiredReviews(t *testing.T) {
	store := &fakeImageStore{}
	svc, _, profile := setupPostServiceTest(t, store, 0)

	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{name: "Explicit value", requested: 5, want: 5},
		{name: "Default when omitted", requested: 0, want: model.DefaultRequiredReviews},
		{name: "Clamped to max", requested: 99, want: model.MaxRequiredReviews},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, err := svc.Create(context.Background(), profile.ID, &model.CreatePostRequest{
				Title:           "목표 리뷰 수",
				Categories:      []string{"portrait"},
				RequiredReviews: tt.requested,
			}, makeImageFiles(t, 1))
			require.NoError(t, err)
			assert.Equal(t, tt.want, post.RequiredReviews)
		})
	}
}

func TestPostService_Create_Validation(t *testing.T) {
	store := &fakeImageStore{}
	svc, _, profile := setupPostServiceTest(t, store, 0)

	tests := []struct {
		name      string
		images    int
		questions []string
		wantErr   error
	}{
		{
			name:    "No images",
			images:  0,
			wantErr: ErrImagesRequired,
		},
		{
			name:    "Too many images",
			images:  4,
			wantErr: ErrTooManyImages,
		},
		{
			name:      "Too many questions",
			images:    1,
			questions: []string{"하나", "둘", "셋", "넷"},
			wantErr:   ErrTooManyQuestions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), profile.ID, &model.CreatePostRequest{
				Title:      "검증",
				Categories: []string{"portrait"},
				Questions:  tt.questions,
			}, makeImageFiles(t, tt.images))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// 검증 단계에서 거부되면 업로드는 한 번도 호출되지 않음
	assert.Empty(t, store.uploads)
}

func TestPostService_Create_UploadFailureAborts(t *testing.T) {
	store := &fakeImageStore{failAt: 2}
	svc, testDB, profile := setupPostServiceTest(t, store, 0)

	_, err := svc.Create(context.Background(), profile.ID, &model.CreatePostRequest{
		Title:      "실패 케이스",
		Categories: []string{"portrait"},
	}, makeImageFiles(t, 3))
	assert.ErrorIs(t, err, ErrImageUploadFail)

	// 업로드 실패 시 게시물 행은 만들어지지 않음
	var count int64
	require.NoError(t, testDB.Model(&model.Post{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestPostService_Recommended(t *testing.T) {
	store := &fakeImageStore{}
	svc, testDB, profile := setupPostServiceTest(t, store, 0)

	other := seedUser(t, testDB, "other@example.com")
	otherProfile := &model.Profile{UserID: other.ID, DisplayName: "다른작가"}
	require.NoError(t, testDB.Create(otherProfile).Error)

	// 관심 장르와 겹치는 공개 게시물만 추천됨
	matching := &model.Post{
		ProfileID: otherProfile.ID, Title: "인물 사진",
		Categories: []string{"portrait"}, ImageURLs: []string{"https://cdn.example.com/x.jpg"},
		IsLive: true,
	}
	require.NoError(t, testDB.Create(matching).Error)
	require.NoError(t, testDB.Create(&model.Post{
		ProfileID: otherProfile.ID, Title: "풍경 사진",
		Categories: []string{"landscape"}, ImageURLs: []string{"https://cdn.example.com/y.jpg"},
		IsLive: true,
	}).Error)

	posts, err := svc.Recommended(profile.ID, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, matching.ID, posts[0].ID)
}

func TestPostService_GetByID_AnonymousReviewerHidden(t *testing.T) {
	store := &fakeImageStore{}
	svc, testDB, profile := setupPostServiceTest(t, store, 0)

	reviewerUser := seedUser(t, testDB, "critic@example.com")
	reviewerProfile := &model.Profile{UserID: reviewerUser.ID, DisplayName: "비평가"}
	require.NoError(t, testDB.Create(reviewerProfile).Error)

	post := &model.Post{
		ProfileID: profile.ID, Title: "익명 리뷰 대상",
		ImageURLs: []string{"https://cdn.example.com/a.jpg"},
		IsLive:    true,
	}
	require.NoError(t, testDB.Create(post).Error)
	require.NoError(t, testDB.Create(&model.Review{
		PostID: post.ID, ReviewerID: reviewerProfile.ID,
		TechnicalScore: 7, CompositionScore: 8, CreativityScore: 9,
		IsAnonymous: true,
	}).Error)

	found, err := svc.GetByID(post.ID)
	require.NoError(t, err)

	// 상세 응답으로 변환하면 익명 리뷰의 리뷰어 정보가 모두 가려져야 함
	resp := model.NewPostDetailResponse(found)
	require.Len(t, resp.Reviews, 1)
	assert.Zero(t, resp.Reviews[0].ReviewerID)
	assert.Nil(t, resp.Reviews[0].Reviewer)
	assert.Equal(t, "익명", resp.Reviews[0].ReviewerName)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "비평가")
	assert.NotContains(t, string(body), fmt.Sprintf(`"reviewer_id":%d`, reviewerProfile.ID))
}

func TestPostService_ForceLiveAndDelete(t *testing.T) {
	store := &fakeImageStore{}
	svc, testDB, profile := setupPostServiceTest(t, store, 0)

	post := &model.Post{
		ProfileID: profile.ID, Title: "관리 대상",
		ImageURLs: []string{"https://cdn.example.com/z.jpg"},
		IsLive:    false,
	}
	require.NoError(t, testDB.Create(post).Error)

	require.NoError(t, svc.ForceLive(post.ID))
	var found model.Post
	require.NoError(t, testDB.First(&found, post.ID).Error)
	assert.True(t, found.IsLive)

	require.NoError(t, svc.Delete(post.ID))
	err := testDB.First(&found, post.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, svc.ForceLive(9999), ErrPostNotFound)
}
