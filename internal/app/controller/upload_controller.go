package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/furniture-backend/internal/app/dto"
	"github.com/ikkim/furniture-backend/internal/app/service"
	apperrors "github.com/ikkim/furniture-backend/internal/errors"
)

type UploadController struct {
	fileService service.FileService
}

func NewUploadController(fileService service.FileService) *UploadController {
	return &UploadController{fileService: fileService}
}

type PresignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

type RegisterFileRequest struct {
	Key         string `json:"key" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// PresignProductFile POST /api/v1/products/:id/files/presign (admin)
func (ctrl *UploadController) PresignProductFile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "파일 정보가 필요합니다")
		return
	}

	upload, err := ctrl.fileService.PresignProductFile(c.Request.Context(), p, id, req.Filename, req.ContentType)
	if err != nil {
		respondError(c, err, "upload")
		return
	}
	c.JSON(http.StatusOK, upload)
}

// RegisterProductFile POST /api/v1/products/:id/files (admin)
func (ctrl *UploadController) RegisterProductFile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req RegisterFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "파일 키가 필요합니다")
		return
	}

	file, err := ctrl.fileService.RegisterProductFile(c.Request.Context(), p, id, req.Key, req.ContentType)
	if err != nil {
		respondError(c, err, "create file")
		return
	}
	c.JSON(http.StatusCreated, dto.NewProductFileResponse(file))
}

// PresignCommentFile POST /api/v1/comments/:id/files/presign
func (ctrl *UploadController) PresignCommentFile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "파일 정보가 필요합니다")
		return
	}

	upload, err := ctrl.fileService.PresignCommentFile(c.Request.Context(), p, id, req.Filename, req.ContentType)
	if err != nil {
		respondError(c, err, "upload")
		return
	}
	c.JSON(http.StatusOK, upload)
}

// RegisterCommentFile POST /api/v1/comments/:id/files
func (ctrl *UploadController) RegisterCommentFile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req RegisterFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "파일 키가 필요합니다")
		return
	}

	file, err := ctrl.fileService.RegisterCommentFile(c.Request.Context(), p, id, req.Key, req.ContentType)
	if err != nil {
		respondError(c, err, "create file")
		return
	}
	c.JSON(http.StatusCreated, dto.NewCommentFileResponse(file))
}
