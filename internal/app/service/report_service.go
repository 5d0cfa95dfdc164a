package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/lenspick/lenspick-backend/internal/app/repository"
	"github.com/lenspick/lenspick-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// ReportService 관리자용 활동 리포트 (xlsx)
type ReportService interface {
	ActivityReport() (*bytes.Buffer, string, error)
}

type reportService struct {
	profileRepo repository.ProfileRepository
	postRepo    repository.PostRepository
	reviewRepo  repository.ReviewRepository
}

func NewReportService(
	profileRepo repository.ProfileRepository,
	postRepo repository.PostRepository,
	reviewRepo repository.ReviewRepository,
) ReportService {
	return &reportService{
		profileRepo: profileRepo,
		postRepo:    postRepo,
		reviewRepo:  reviewRepo,
	}
}

// ActivityReport 최근 30일 활동 요약과 잠금 대기 프로필 목록을 시트로 만든다
func (s *reportService) ActivityReport() (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "Summary"
	f.SetSheetName("Sheet1", summarySheet)

	profileCount, err := s.profileRepo.CountAll()
	if err != nil {
		return nil, "", err
	}
	reviewCount, err := s.reviewRepo.CountSince(time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, "", err
	}

	f.SetCellValue(summarySheet, "A1", "항목")
	f.SetCellValue(summarySheet, "B1", "값")
	f.SetCellValue(summarySheet, "A2", "전체 프로필 수")
	f.SetCellValue(summarySheet, "B2", profileCount)
	f.SetCellValue(summarySheet, "A3", "최근 30일 리뷰 수")
	f.SetCellValue(summarySheet, "B3", reviewCount)
	f.SetCellValue(summarySheet, "A4", "생성 시각")
	f.SetCellValue(summarySheet, "B4", time.Now().Format("2006-01-02 15:04:05"))

	// 잠금 대기 프로필 시트
	pendingSheet := "LockedProfiles"
	if _, err := f.NewSheet(pendingSheet); err != nil {
		return nil, "", err
	}

	pending, err := s.profileRepo.FindUnlockPending(1)
	if err != nil {
		return nil, "", err
	}

	headers := []string{"프로필 ID", "표시 이름", "남은 리뷰 수", "작성한 리뷰 수", "가입일"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(pendingSheet, cell, h)
	}
	for row, p := range pending {
		values := []interface{}{p.ID, p.DisplayName, p.ReviewsToUnlock, p.ReviewCount, p.CreatedAt.Format("2006-01-02")}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(pendingSheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("Failed to write activity report", err)
		return nil, "", err
	}

	filename := fmt.Sprintf("lenspick_activity_%s.xlsx", time.Now().Format("20060102"))
	logger.Info("Activity report generated", map[string]interface{}{
		"locked_profiles": len(pending),
	})
	return buf, filename, nil
}
