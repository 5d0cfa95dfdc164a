package service

import (
	"errors"

	"github.com/lenspick/lenspick-backend/internal/app/model"
	"github.com/lenspick/lenspick-backend/internal/app/repository"
	apperrors "github.com/lenspick/lenspick-backend/internal/errors"
	"github.com/lenspick/lenspick-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrSchemaMissing   = errors.New("profile table does not exist")
	ErrUnknownInterest = errors.New("unknown interest category")
)

type ProfileService interface {
	// GetOrCreateByUserID 본인 프로필 조회. 없으면 최소 프로필을 만들어 돌려줌
	GetOrCreateByUserID(userID uint, email string) (*model.ProfileResponse, error)
	GetByID(id uint) (*model.ProfileResponse, error)
	CompleteOnboarding(userID uint, req *model.OnboardingRequest) (*model.Profile, error)
	Update(userID uint, req *model.UpdateProfileRequest) (*model.Profile, error)
	ForceUnlock(profileID uint) error
}

type profileService struct {
	profileRepo  repository.ProfileRepository
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
}

func NewProfileService(
	profileRepo repository.ProfileRepository,
	postRepo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
) ProfileService {
	return &profileService{
		profileRepo:  profileRepo,
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *profileService) GetOrCreateByUserID(userID uint, email string) (*model.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if apperrors.IsMissingSchema(err) {
			// 테이블 자체가 없으면 생성 시도도 의미가 없음
			logger.Error("Profile table missing", err, map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrSchemaMissing
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		// 가입 시 프로필 생성이 누락된 계정 복구 (가입 시와 같은 기본 이름)
		profile = &model.Profile{
			UserID:          userID,
			DisplayName:     displayNameFromEmail(email),
			ReviewsToUnlock: model.DefaultReviewsToUnlock,
		}
		if err := s.profileRepo.Create(profile); err != nil {
			// 동시 요청이 먼저 만들었을 수 있으므로 한 번 더 조회
			if existing, findErr := s.profileRepo.FindByUserID(userID); findErr == nil {
				profile = existing
			} else {
				return nil, err
			}
		} else {
			logger.Info("Recovered missing profile", map[string]interface{}{
				"user_id":    userID,
				"profile_id": profile.ID,
			})
		}
	}

	return s.buildResponse(profile)
}

func (s *profileService) GetByID(id uint) (*model.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return s.buildResponse(profile)
}

// CompleteOnboarding 관심 장르를 설정하고 리뷰 과제 카운터를 초기값으로 되돌림
func (s *profileService) CompleteOnboarding(userID uint, req *model.OnboardingRequest) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	if err := s.validateInterests(req.Interests); err != nil {
		return nil, err
	}

	profile.DisplayName = req.DisplayName
	profile.Interests = req.Interests
	profile.Bio = req.Bio
	profile.ReviewsToUnlock = model.DefaultReviewsToUnlock

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, err
	}

	logger.Info("Onboarding completed", map[string]interface{}{
		"profile_id": profile.ID,
		"interests":  len(profile.Interests),
	})
	return profile, nil
}

func (s *profileService) Update(userID uint, req *model.UpdateProfileRequest) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Interests != nil {
		if err := s.validateInterests(req.Interests); err != nil {
			return nil, err
		}
		profile.Interests = req.Interests
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ForceUnlock 관리자 전용. 리뷰 과제 카운터를 0으로 내림
func (s *profileService) ForceUnlock(profileID uint) error {
	if _, err := s.profileRepo.FindByID(profileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	return s.profileRepo.ResetReviewsToUnlock(profileID, 0)
}

func (s *profileService) validateInterests(slugs []string) error {
	categories, err := s.categoryRepo.FindBySlugs(slugs)
	if err != nil {
		return err
	}
	if len(categories) != len(uniqueStrings(slugs)) {
		return ErrUnknownInterest
	}
	return nil
}

func (s *profileService) buildResponse(profile *model.Profile) (*model.ProfileResponse, error) {
	received, err := s.postRepo.SumReceivedReviews(profile.ID)
	if err != nil {
		return nil, err
	}
	return model.NewProfileResponse(profile, received), nil
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
