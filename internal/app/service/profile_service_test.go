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

func setupProfileServiceTest(t *testing.T) (ProfileService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	require.NoError(t, testDB.Create([]model.Category{
		{Slug: "portrait", Name: "인물"},
		{Slug: "street", Name: "스트리트"},
	}).Error)

	profileRepo := repository.NewProfileRepository(testDB)
	postRepo := repository.NewPostRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)

	return NewProfileService(profileRepo, postRepo, categoryRepo), testDB
}

func seedUser(t *testing.T, testDB *gorm.DB, email string) *model.User {
	user := &model.User{Email: email, PasswordHash: "hash", Role: model.RoleUser}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func TestProfileService_GetOrCreate_Existing(t *testing.T) {
	svc, testDB := setupProfileServiceTest(t)

	user := seedUser(t, testDB, "existing@example.com")
	require.NoError(t, testDB.Create(&model.Profile{
		UserID:          user.ID,
		DisplayName:     "기존유저",
		Interests:       []string{"portrait"},
		ReviewsToUnlock: 1,
	}).Error)

	resp, err := svc.GetOrCreateByUserID(user.ID, user.Email)
	require.NoError(t, err)
	assert.Equal(t, "기존유저", resp.Profile.DisplayName)
	assert.False(t, resp.OnboardingNeeded)
}

func TestProfileService_GetOrCreate_Recovers(t *testing.T) {
	svc, testDB := setupProfileServiceTest(t)

	// 프로필 없이 계정만 존재하는 상태
	user := seedUser(t, testDB, "orphan@example.com")

	resp, err := svc.GetOrCreateByUserID(user.ID, user.Email)
	require.NoError(t, err)
	assert.NotZero(t, resp.Profile.ID)
	// 복구된 프로필의 기본 이름은 가입 시와 같은 이메일 로컬 파트
	assert.Equal(t, "orphan", resp.Profile.DisplayName)
	assert.Equal(t, model.DefaultReviewsToUnlock, resp.Profile.ReviewsToUnlock)
	assert.True(t, resp.OnboardingNeeded)

	// 같은 계정으로 다시 불러도 새로 만들지 않음
	again, err := svc.GetOrCreateByUserID(user.ID, user.Email)
	require.NoError(t, err)
	assert.Equal(t, resp.Profile.ID, again.Profile.ID)
}

func TestProfileService_GetOrCreate_SchemaMissing(t *testing.T) {
	svc, testDB := setupProfileServiceTest(t)

	user := seedUser(t, testDB, "early@example.com")

	// 마이그레이션 전 상태: profiles 테이블 자체가 없음
	require.NoError(t, testDB.Migrator().DropTable(&model.Profile{}))

	_, err := svc.GetOrCreateByUserID(user.ID, user.Email)
	assert.ErrorIs(t, err, ErrSchemaMissing)
}

func TestProfileService_CompleteOnboarding(t *testing.T) {
	svc, testDB := setupProfileServiceTest(t)

	user := seedUser(t, testDB, "onboard@example.com")
	require.NoError(t, testDB.Create(&model.Profile{
		UserID:          user.ID,
		DisplayName:     "temp",
		ReviewsToUnlock: 1, // 복구 등으로 값이 달라졌어도
	}).Error)

	profile, err := svc.CompleteOnboarding(user.ID, &model.OnboardingRequest{
		DisplayName: "새이름",
		Interests:   []string{"portrait", "street"},
	})
	require.NoError(t, err)
	assert.Equal(t, "새이름", profile.DisplayName)
	assert.False(t, profile.OnboardingRequired())
	// 온보딩 완료 시 카운터는 초기값으로 재설정
	assert.Equal(t, model.DefaultReviewsToUnlock, profile.ReviewsToUnlock)
}

func TestProfileService_CompleteOnboarding_UnknownInterest(t *testing.T) {
	svc, testDB := setupProfileServiceTest(t)

	user := seedUser(t, testDB, "badslug@example.com")
	require.NoError(t, testDB.Create(&model.Profile{
		UserID: user.ID, DisplayName: "temp",
	}).Error)

	_, err := svc.CompleteOnboarding(user.ID, &model.OnboardingRequest{
		DisplayName: "이름",
		Interests:   []string{"portrait", "no-such-genre"},
	})
	assert.ErrorIs(t, err, ErrUnknownInterest)
}

func TestProfileService_GetByID_Averages(t *testing.T) {
	svc, testDB := setupProfileServiceTest(t)

	user := seedUser(t, testDB, "avg@example.com")
	profile := &model.Profile{
		UserID:           user.ID,
		DisplayName:      "평균",
		TechnicalTotal:   14,
		CompositionTotal: 16,
		CreativityTotal:  18,
	}
	require.NoError(t, testDB.Create(profile).Error)

	// 리뷰 2건을 받은 게시물
	require.NoError(t, testDB.Create(&model.Post{
		ProfileID:       profile.ID,
		Title:           "사진",
		ImageURLs:       []string{"https://cdn.example.com/a.jpg"},
		IsLive:          true,
		ReceivedReviews: 2,
	}).Error)

	resp, err := svc.GetByID(profile.ID)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, resp.AvgTechnical, 0.001)
	assert.InDelta(t, 8.0, resp.AvgComposition, 0.001)
	assert.InDelta(t, 9.0, resp.AvgCreativity, 0.001)
}

func TestProfileService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupProfileServiceTest(t)

	_, err := svc.GetByID(12345)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileService_ForceUnlock(t *testing.T) {
	svc, testDB := setupProfileServiceTest(t)

	user := seedUser(t, testDB, "force@example.com")
	profile := &model.Profile{
		UserID: user.ID, DisplayName: "잠김", ReviewsToUnlock: 3,
	}
	require.NoError(t, testDB.Create(profile).Error)

	require.NoError(t, svc.ForceUnlock(profile.ID))

	var found model.Profile
	require.NoError(t, testDB.First(&found, profile.ID).Error)
	assert.Equal(t, 0, found.ReviewsToUnlock)
	assert.True(t, found.CanPost())
}
