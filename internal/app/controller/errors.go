package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/furniture-backend/internal/app/service"
	apperrors "github.com/ikkim/furniture-backend/internal/errors"
	"github.com/ikkim/furniture-backend/internal/middleware"
	"github.com/ikkim/furniture-backend/internal/storage"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// serviceErrors maps service sentinels onto HTTP responses. Order matters:
// the first match wins.
var serviceErrors = []errorMapping{
	// 400
	{service.ErrEmailAlreadyExists, http.StatusBadRequest, apperrors.AuthEmailAlreadyExists, "이미 사용 중인 이메일입니다"},
	{service.ErrPasswordTooLong, http.StatusBadRequest, apperrors.ValidationInvalidInput, "비밀번호는 72바이트 이하여야 합니다"},
	{service.ErrInvalidQuantity, http.StatusBadRequest, apperrors.StockInvalidQuantity, "수량이 올바르지 않습니다"},
	{service.ErrInvalidPrice, http.StatusBadRequest, apperrors.InvalidPrice, "가격이 올바르지 않습니다"},
	{service.ErrInvalidRating, http.StatusBadRequest, apperrors.CommentInvalidRating, "평점은 1~5 사이의 값이어야 합니다"},
	{service.ErrEmptyPost, http.StatusBadRequest, apperrors.BoardPostEmpty, "제목과 내용을 입력해주세요"},
	{service.ErrEmptyComment, http.StatusBadRequest, apperrors.CommentEmpty, "댓글 내용을 입력해주세요"},
	{service.ErrInvalidFileKey, http.StatusBadRequest, apperrors.UploadInvalidKey, "파일 키가 올바르지 않습니다"},
	{storage.ErrContentTypeNotAllowed, http.StatusBadRequest, apperrors.UploadInvalidFileType, "허용되지 않는 파일 형식입니다"},
	{service.ErrCategoryAlreadyExists, http.StatusBadRequest, apperrors.CategoryExists, "이미 존재하는 카테고리입니다"},
	// 401
	{service.ErrInvalidCredentials, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "이메일 또는 비밀번호가 올바르지 않습니다"},
	{service.ErrInvalidRefreshToken, http.StatusUnauthorized, apperrors.AuthRefreshInvalid, "유효하지 않은 리프레시 토큰입니다"},
	// 403
	{service.ErrForbidden, http.StatusForbidden, apperrors.AuthzForbidden, "접근 권한이 없습니다"},
	// 404
	{service.ErrOrderNotFound, http.StatusNotFound, apperrors.OrderNotFound, "주문을 찾을 수 없습니다"},
	{service.ErrOrderCheckNotFound, http.StatusNotFound, apperrors.OrderCheckNotFound, "재고 처리 내역을 찾을 수 없습니다"},
	{service.ErrOptionNotFound, http.StatusNotFound, apperrors.OptionNotFound, "옵션을 찾을 수 없습니다"},
	{service.ErrUserNotFound, http.StatusNotFound, apperrors.UserNotFound, "사용자를 찾을 수 없습니다"},
	{service.ErrProductNotFound, http.StatusNotFound, apperrors.ProductNotFound, "상품을 찾을 수 없습니다"},
	{service.ErrCategoryNotFound, http.StatusNotFound, apperrors.CategoryNotFound, "카테고리를 찾을 수 없습니다"},
	{service.ErrCartItemNotFound, http.StatusNotFound, apperrors.CartItemNotFound, "장바구니 항목을 찾을 수 없습니다"},
	{service.ErrCommentNotFound, http.StatusNotFound, apperrors.CommentNotFound, "댓글을 찾을 수 없습니다"},
	{service.ErrPostNotFound, http.StatusNotFound, apperrors.BoardPostNotFound, "게시글을 찾을 수 없습니다"},
	{service.ErrEmptyCart, http.StatusNotFound, apperrors.CartEmpty, "장바구니가 비어 있습니다"},
	// 409
	{service.ErrInsufficientStock, http.StatusConflict, apperrors.StockInsufficient, "재고가 부족합니다"},
	{service.ErrOrderNotActive, http.StatusConflict, apperrors.OrderNotActive, "이미 취소된 주문입니다"},
	// 500
	{service.ErrCheckoutFailed, http.StatusInternalServerError, apperrors.OrderCreateFailed, "주문 생성 중 오류가 발생했습니다"},
	{service.ErrOrderDeleteFailed, http.StatusInternalServerError, apperrors.OrderDeleteFailed, "주문 삭제 중 오류가 발생했습니다"},
	{service.ErrStockUpdateFailed, http.StatusInternalServerError, apperrors.StockUpdateFailed, "재고 변경 중 오류가 발생했습니다"},
	{service.ErrStorageUnavailable, http.StatusInternalServerError, apperrors.UploadUnavailable, "파일 업로드를 사용할 수 없습니다"},
}

// respondError writes the response for err. Unknown errors go through
// ParseError so database causes still get a readable message.
func respondError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			if m.status >= http.StatusInternalServerError {
				log.Error("Request failed", err, map[string]interface{}{"context": context})
			}
			writeMapped(c, m)
			return
		}
	}

	log.Error("Unhandled error", err, map[string]interface{}{"context": context})
	apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, context)
}

func writeMapped(c *gin.Context, m errorMapping) {
	switch m.status {
	case http.StatusBadRequest:
		apperrors.BadRequest(c, m.code, m.message)
	case http.StatusForbidden:
		apperrors.Forbidden(c, m.message)
	case http.StatusNotFound:
		apperrors.NotFound(c, m.code, m.message)
	case http.StatusConflict:
		apperrors.Conflict(c, m.code, m.message)
	default:
		apperrors.RespondWithError(c, m.status, m.code, m.message)
	}
}

// bindJSON binds the request body or writes a 400 listing the failing fields.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Invalid request body", map[string]interface{}{
			"path":  c.FullPath(),
			"error": err.Error(),
		})
		apperrors.RespondWithValidationError(c, apperrors.ValidationFields(err))
		return false
	}
	return true
}

// principal returns the authenticated caller or writes a 401.
func principal(c *gin.Context) (service.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		apperrors.Unauthorized(c, "")
	}
	return p, ok
}

// idParam parses a positive numeric path parameter or writes a 400.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 ID입니다")
		return 0, false
	}
	return uint(id), true
}

func pageQuery(c *gin.Context) service.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	return service.Page{Page: page, Size: size}.Normalize()
}
