package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/furniture-backend/internal/app/dto"
	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/internal/app/service"
	apperrors "github.com/ikkim/furniture-backend/internal/errors"
)

// BoardController 게시판 컨트롤러
type BoardController struct {
	boardService service.BoardService
}

func NewBoardController(boardService service.BoardService) *BoardController {
	return &BoardController{boardService: boardService}
}

type CreatePostRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Contents string `json:"contents" binding:"required"`
}

type UpdatePostRequest struct {
	Title    *string `json:"title" binding:"omitempty,max=200"`
	Contents *string `json:"contents"`
}

// ListPosts GET /api/v1/boards?page=&size=&search=&user_id=
func (ctrl *BoardController) ListPosts(c *gin.Context) {
	query := model.BoardQuery{Search: c.Query("search")}
	if raw := c.Query("user_id"); raw != "" {
		userID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 사용자 ID입니다")
			return
		}
		id := uint(userID)
		query.UserID = &id
	}

	page := pageQuery(c)
	posts, total, err := ctrl.boardService.List(c.Request.Context(), query, page)
	if err != nil {
		respondError(c, err, "board")
		return
	}
	c.JSON(http.StatusOK, dto.NewBoardPostListResponse(posts, total, page.Page, page.Size))
}

// GetPost GET /api/v1/boards/:id
func (ctrl *BoardController) GetPost(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	post, err := ctrl.boardService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "board")
		return
	}
	c.JSON(http.StatusOK, dto.NewBoardPostResponse(post))
}

// CreatePost POST /api/v1/boards
func (ctrl *BoardController) CreatePost(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := ctrl.boardService.Create(c.Request.Context(), p, req.Title, req.Contents)
	if err != nil {
		respondError(c, err, "create board post")
		return
	}
	c.JSON(http.StatusCreated, dto.NewBoardPostResponse(post))
}

// UpdatePost PUT /api/v1/boards/:id
func (ctrl *BoardController) UpdatePost(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := ctrl.boardService.Update(c.Request.Context(), p, id, service.PostInput{
		Title:    req.Title,
		Contents: req.Contents,
	})
	if err != nil {
		respondError(c, err, "update board post")
		return
	}
	c.JSON(http.StatusOK, dto.NewBoardPostResponse(post))
}

// DeletePost DELETE /api/v1/boards/:id
func (ctrl *BoardController) DeletePost(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.boardService.Delete(c.Request.Context(), p, id); err != nil {
		respondError(c, err, "delete board post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "게시글이 삭제되었습니다"})
}
