package dto

import (
	"time"

	"github.com/ikkim/furniture-backend/internal/app/model"
)

type BoardPostResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	UserName  string    `json:"user_name"`
	Title     string    `json:"title"`
	Contents  string    `json:"contents"`
	ViewCount int       `json:"view_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BoardPostListResponse struct {
	Posts []BoardPostResponse `json:"posts"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Size  int                 `json:"size"`
}

func NewBoardPostResponse(p *model.BoardPost) BoardPostResponse {
	return BoardPostResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		UserName:  p.User.Name,
		Title:     p.Title,
		Contents:  p.Contents,
		ViewCount: p.ViewCount,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func NewBoardPostListResponse(posts []model.BoardPost, total int64, page, size int) BoardPostListResponse {
	out := make([]BoardPostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, NewBoardPostResponse(&posts[i]))
	}
	return BoardPostListResponse{Posts: out, Total: total, Page: page, Size: size}
}
