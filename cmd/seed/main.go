package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lenspick/lenspick-backend/config"
	"github.com/lenspick/lenspick-backend/internal/app/model"
	"github.com/lenspick/lenspick-backend/internal/app/repository"
	"github.com/lenspick/lenspick-backend/internal/db"
	"github.com/lenspick/lenspick-backend/pkg/util"
	"github.com/xuri/excelize/v2"
)

// 데모 계정 일괄 등록 도구
// XLSX 컬럼: 이메일 | 비밀번호 | 표시이름 | 관심장르(쉼표 구분) | 소개 | 권한
func main() {
	// 명령줄 인자 확인
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// DB 연결
	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	userRepo := repository.NewUserRepository(db.GetDB())
	profileRepo := repository.NewProfileRepository(db.GetDB())

	// XLSX 파일 읽기
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	accounts, err := readAccountsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total accounts to import: %d\n", len(accounts))

	// 사용자 확인
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imported := 0
	for _, account := range accounts {
		hash, err := util.HashPassword(account.password)
		if err != nil {
			log.Printf("Skipping %s: %v", account.email, err)
			continue
		}

		user := &model.User{
			Email:        account.email,
			PasswordHash: hash,
			Role:         account.role,
		}
		if err := userRepo.Create(user); err != nil {
			log.Printf("Skipping %s: %v", account.email, err)
			continue
		}

		profile := &model.Profile{
			UserID:          user.ID,
			DisplayName:     account.displayName,
			Interests:       account.interests,
			Bio:             account.bio,
			ReviewsToUnlock: model.DefaultReviewsToUnlock,
		}
		if err := profileRepo.Create(profile); err != nil {
			log.Printf("Profile failed for %s: %v", account.email, err)
			continue
		}
		imported++
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total accounts imported: %d\n", imported)
}

type seedAccount struct {
	email       string
	password    string
	displayName string
	interests   []string
	bio         string
	role        model.UserRole
}

func readAccountsFromXLSX(filePath string) ([]seedAccount, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var accounts []seedAccount
	seen := make(map[string]bool) // 이메일 중복 제거용
	skipped := 0

	// 첫 행은 헤더이므로 스킵
	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}
		if len(row) < 3 {
			skipped++
			continue
		}

		email := strings.TrimSpace(row[0])
		password := strings.TrimSpace(row[1])
		displayName := strings.TrimSpace(row[2])
		if email == "" || password == "" || seen[email] {
			skipped++
			continue
		}
		seen[email] = true

		account := seedAccount{
			email:       email,
			password:    password,
			displayName: displayName,
			role:        model.RoleUser,
		}
		if account.displayName == "" {
			account.displayName = util.RandomDisplayName(strings.Split(email, "@")[0])
		}
		if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
			for _, slug := range strings.Split(row[3], ",") {
				if s := strings.TrimSpace(slug); s != "" {
					account.interests = append(account.interests, s)
				}
			}
		}
		if len(row) > 4 {
			account.bio = strings.TrimSpace(row[4])
		}
		if len(row) > 5 && strings.TrimSpace(row[5]) == string(model.RoleAdmin) {
			account.role = model.RoleAdmin
		}

		accounts = append(accounts, account)
	}

	if skipped > 0 {
		fmt.Printf("Skipped rows: %d\n", skipped)
	}
	return accounts, nil
}
