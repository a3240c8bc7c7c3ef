package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/furniture-backend/internal/app/dto"
	"github.com/ikkim/furniture-backend/internal/app/service"
)

type CommentController struct {
	commentService service.CommentService
}

func NewCommentController(commentService service.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
}

// ListComments GET /api/v1/products/:id/comments
func (ctrl *CommentController) ListComments(c *gin.Context) {
	productID, ok := idParam(c, "id")
	if !ok {
		return
	}

	comments, total, err := ctrl.commentService.ListByProduct(c.Request.Context(), productID, pageQuery(c))
	if err != nil {
		respondError(c, err, "comment")
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentListResponse(comments, total))
}

// CreateComment POST /api/v1/products/:id/comments
func (ctrl *CommentController) CreateComment(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	productID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := ctrl.commentService.Create(c.Request.Context(), p, productID, req.Content, req.Rating)
	if err != nil {
		respondError(c, err, "create comment")
		return
	}
	c.JSON(http.StatusCreated, dto.NewCommentResponse(comment))
}

// DeleteComment DELETE /api/v1/comments/:id
func (ctrl *CommentController) DeleteComment(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.commentService.Delete(c.Request.Context(), p, id); err != nil {
		respondError(c, err, "delete comment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "댓글이 삭제되었습니다"})
}
