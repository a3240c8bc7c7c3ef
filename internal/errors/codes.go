package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	// ==================== 인증 (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // 로그인 필요
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // 잘못된 이메일/비밀번호
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // 토큰 만료
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // 잘못된 토큰
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // 토큰 폐기됨 (로그아웃)
	AuthRefreshInvalid     = "AUTH_REFRESH_INVALID"     // 잘못된 리프레시 토큰
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // 이메일 중복

	// ==================== 인가/권한 (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"  // 접근 권한 없음
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY" // 관리자만 가능

	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // 잘못된 입력
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // 잘못된 ID
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE" // 범위 초과
	ValidationRequired     = "VALIDATION_REQUIRED"      // 필수 항목

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // 리소스 없음
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // 이미 존재
	ResourceConflict      = "RESOURCE_CONFLICT"       // 충돌

	// ==================== 상품 (PRODUCT_) ====================
	UserNotFound     = "USER_NOT_FOUND"     // 사용자 없음
	CategoryNotFound = "CATEGORY_NOT_FOUND" // 카테고리 없음
	CategoryExists   = "CATEGORY_EXISTS"    // 카테고리 중복
	ProductNotFound  = "PRODUCT_NOT_FOUND"  // 상품 없음
	OptionNotFound   = "OPTION_NOT_FOUND"   // 옵션 없음
	InvalidPrice     = "PRODUCT_INVALID_PRICE"

	// ==================== 장바구니/주문 (CART_, ORDER_) ====================
	CartEmpty            = "CART_EMPTY"             // 장바구니 비어있음
	CartItemNotFound     = "CART_ITEM_NOT_FOUND"    // 장바구니 항목 없음
	OrderNotFound        = "ORDER_NOT_FOUND"        // 주문 없음
	OrderNotActive       = "ORDER_NOT_ACTIVE"       // 이미 취소된 주문
	OrderCheckNotFound   = "ORDER_CHECK_NOT_FOUND"  // 재고 처리 내역 없음
	OrderCreateFailed    = "ORDER_CREATE_FAILED"    // 주문 생성 실패
	OrderDeleteFailed    = "ORDER_DELETE_FAILED"    // 주문 삭제 실패
	StockInsufficient    = "STOCK_INSUFFICIENT"     // 재고 부족
	StockInvalidQuantity = "STOCK_INVALID_QUANTITY" // 잘못된 수량
	StockUpdateFailed    = "STOCK_UPDATE_FAILED"    // 재고 변경 실패

	// ==================== 댓글 (COMMENT_) ====================
	CommentNotFound      = "COMMENT_NOT_FOUND"      // 댓글 없음
	CommentInvalidRating = "COMMENT_INVALID_RATING" // 잘못된 평점
	CommentEmpty         = "COMMENT_EMPTY"          // 내용 없음

	// ==================== 게시판 (BOARD_) ====================
	BoardPostNotFound = "BOARD_POST_NOT_FOUND" // 게시글 없음
	BoardPostEmpty    = "BOARD_POST_EMPTY"     // 제목/내용 없음

	// ==================== 업로드 (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // 잘못된 파일 형식
	UploadInvalidKey      = "UPLOAD_INVALID_KEY"       // 다른 리소스의 파일 키
	UploadUnavailable     = "UPLOAD_UNAVAILABLE"       // 스토리지 미설정
	UploadFailed          = "UPLOAD_FAILED"            // 업로드 실패

	// ==================== 내부 오류 (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // 서버 오류
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB 오류
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"   // 외부 API 오류
)
