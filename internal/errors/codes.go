package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	// ==================== 인증 (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"       // 로그인 필요
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // 잘못된 이메일/비밀번호
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"      // 토큰 만료
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"      // 잘못된 토큰
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"      // 토큰 폐기됨
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"       // 이메일 중복

	// ==================== 인가/권한 (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // 접근 권한 없음
	AuthzPolicyDenied = "AUTHZ_POLICY_DENIED"  // 행 수준 정책 거부 (관리자 문의)
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // 권한 정보 없음
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"     // 관리자만 가능
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"     // 소유자만 가능

	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // 잘못된 입력
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // 잘못된 ID
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE" // 범위 초과
	ValidationRequired     = "VALIDATION_REQUIRED"      // 필수 항목

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // 리소스 없음
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // 이미 존재
	ResourceConflict      = "RESOURCE_CONFLICT"       // 충돌

	// ==================== 프로필 (PROFILE_) ====================
	ProfileNotFound           = "PROFILE_NOT_FOUND"            // 프로필 없음
	ProfileOnboardingRequired = "PROFILE_ONBOARDING_REQUIRED"  // 온보딩 미완료
	ProfileInterestsRequired  = "PROFILE_INTERESTS_REQUIRED"   // 관심 분야 필수

	// ==================== 게시물 (POST_) ====================
	PostNotFound        = "POST_NOT_FOUND"         // 게시물 없음
	PostNotLive         = "POST_NOT_LIVE"          // 아직 공개되지 않은 게시물
	PostTooManyImages   = "POST_TOO_MANY_IMAGES"   // 이미지 개수 초과
	PostTooManyQuestions = "POST_TOO_MANY_QUESTIONS" // 질문 개수 초과
	PostImagesRequired  = "POST_IMAGES_REQUIRED"   // 이미지 필수

	// ==================== 리뷰 (REVIEW_) ====================
	ReviewNotFound      = "REVIEW_NOT_FOUND"       // 리뷰 없음
	ReviewInvalidScore  = "REVIEW_INVALID_SCORE"   // 잘못된 점수 (1-10)
	ReviewAlreadyExists = "REVIEW_ALREADY_EXISTS"  // 이미 리뷰 작성함
	ReviewOwnPost       = "REVIEW_OWN_POST"        // 본인 게시물 리뷰 불가

	// ==================== 업로드 (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // 잘못된 파일 형식
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"    // 파일 너무 큼
	UploadFailed          = "UPLOAD_FAILED"            // 업로드 실패

	// ==================== 알림 (NOTIFICATION_) ====================
	NotificationNotFound = "NOTIFICATION_NOT_FOUND" // 알림 없음

	// ==================== 내부 오류 (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // 서버 오류
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB 오류
	InternalSchemaMissing = "INTERNAL_SCHEMA_MISSING" // 테이블/스키마 없음 (마이그레이션 필요)
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"   // 외부 API 오류
)
