package errors

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE 코드
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// ErrorInfo 에러 정보 구조
type ErrorInfo struct {
	Code    string // 에러 코드 (codes.go 참조)
	Message string // 사용자 친화적 메시지
}

// ParseError 에러를 파싱하여 사용자 친화적인 메시지와 코드로 변환
// 보안상 민감한 정보는 숨기되, 사용자가 문제를 해결할 수 있는 정보 제공
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "서버 오류가 발생했습니다",
		}
	}

	// 1. GORM 기본 에러
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// 2. PostgreSQL 에러 (드라이버 에러 코드 우선)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return parseDuplicateKeyError(pgErr.ConstraintName + " " + pgErr.Message)
		case pgForeignKeyViolation:
			return parseForeignKeyError(pgErr.Message+" "+pgErr.Detail, context)
		case pgNotNullViolation:
			return parseNotNullError(pgErr.ColumnName + " " + pgErr.Message)
		case pgCheckViolation:
			return parseCheckConstraintError(pgErr.ConstraintName + " " + pgErr.Message)
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 3. 메시지 기반 파싱 (SQLite 등)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr, context)
	}
	if strings.Contains(errStrLower, "not null constraint") || strings.Contains(errStrLower, "violates not-null constraint") {
		return parseNotNullError(errStr)
	}
	if strings.Contains(errStrLower, "check constraint") {
		return parseCheckConstraintError(errStr)
	}

	// 4. 네트워크/연결 에러
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "외부 서비스 연결에 실패했습니다. 잠시 후 다시 시도해주세요",
		}
	}

	// 5. 기본 내부 서버 오류
	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

// parseDuplicateKeyError Unique constraint 위반 에러 파싱
func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "이미 사용 중인 이메일입니다"}
	}
	if strings.Contains(errLower, "categories") || strings.Contains(errLower, "idx_categories_name") {
		return ErrorInfo{Code: CategoryExists, Message: "이미 존재하는 카테고리입니다"}
	}
	if strings.Contains(errLower, "idx_cart_user_option") {
		return ErrorInfo{Code: ResourceConflict, Message: "이미 장바구니에 담긴 옵션입니다"}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "이미 존재하는 데이터입니다",
	}
}

// parseForeignKeyError Foreign key constraint 위반 에러 파싱
func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	// 삭제 시 참조 중인 데이터가 있는 경우
	if strings.Contains(errLower, "still referenced") {
		if strings.Contains(strings.ToLower(context), "option") || strings.Contains(context, "옵션") {
			return ErrorInfo{Code: ResourceConflict, Message: "주문에 사용된 옵션은 삭제할 수 없습니다"}
		}
		return ErrorInfo{Code: ResourceConflict, Message: "연결된 데이터가 있어 삭제할 수 없습니다"}
	}

	// 존재하지 않는 참조 데이터
	if strings.Contains(errLower, "category_id") {
		return ErrorInfo{Code: CategoryNotFound, Message: "존재하지 않는 카테고리입니다"}
	}
	if strings.Contains(errLower, "option_id") {
		return ErrorInfo{Code: OptionNotFound, Message: "존재하지 않는 옵션입니다"}
	}
	if strings.Contains(errLower, "product_id") {
		return ErrorInfo{Code: ProductNotFound, Message: "존재하지 않는 상품입니다"}
	}
	if strings.Contains(errLower, "user_id") {
		return ErrorInfo{Code: UserNotFound, Message: "존재하지 않는 사용자입니다"}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "참조하는 데이터를 찾을 수 없습니다",
	}
}

// parseNotNullError Not null constraint 위반 에러 파싱
func parseNotNullError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") {
		return ErrorInfo{Code: ValidationRequired, Message: "이메일은 필수 항목입니다"}
	}
	if strings.Contains(errLower, "password") {
		return ErrorInfo{Code: ValidationRequired, Message: "비밀번호는 필수 항목입니다"}
	}
	if strings.Contains(errLower, "name") {
		return ErrorInfo{Code: ValidationRequired, Message: "이름은 필수 항목입니다"}
	}

	return ErrorInfo{
		Code:    ValidationRequired,
		Message: "필수 항목이 누락되었습니다",
	}
}

// parseCheckConstraintError Check constraint 위반 에러 파싱
func parseCheckConstraintError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "chk_options_stock") || strings.Contains(errLower, "stock_quantity") {
		return ErrorInfo{Code: StockInsufficient, Message: "재고가 부족합니다"}
	}
	if strings.Contains(errLower, "rating") {
		return ErrorInfo{Code: CommentInvalidRating, Message: "평점은 1~5 사이의 값이어야 합니다"}
	}

	return ErrorInfo{
		Code:    ValidationInvalidInput,
		Message: "입력값이 유효하지 않습니다",
	}
}

// getNotFoundMessage context에 따른 Not Found 메시지
func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "order") || strings.Contains(contextLower, "주문"):
		return "주문을 찾을 수 없습니다"
	case strings.Contains(contextLower, "option") || strings.Contains(contextLower, "옵션"):
		return "옵션을 찾을 수 없습니다"
	case strings.Contains(contextLower, "product") || strings.Contains(contextLower, "상품"):
		return "상품을 찾을 수 없습니다"
	case strings.Contains(contextLower, "user") || strings.Contains(contextLower, "사용자"):
		return "사용자를 찾을 수 없습니다"
	case strings.Contains(contextLower, "comment") || strings.Contains(contextLower, "댓글"):
		return "댓글을 찾을 수 없습니다"
	}

	return "요청한 데이터를 찾을 수 없습니다"
}

// getDefaultErrorMessage context에 따른 기본 에러 메시지
func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") || strings.Contains(contextLower, "생성") || strings.Contains(contextLower, "등록") {
		return "등록 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요"
	}
	if strings.Contains(contextLower, "update") || strings.Contains(contextLower, "수정") {
		return "수정 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요"
	}
	if strings.Contains(contextLower, "delete") || strings.Contains(contextLower, "삭제") {
		return "삭제 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요"
	}

	return "서버 오류가 발생했습니다. 잠시 후 다시 시도해주세요"
}

// ParseAndRespond 에러를 파싱하여 응답 반환 (헬퍼 함수)
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
