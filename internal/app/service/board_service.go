package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/internal/app/repository"
	"github.com/ikkim/furniture-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound = errors.New("board post not found")
	ErrEmptyPost    = errors.New("board post title and contents are required")
)

// PostInput carries a new or edited board post. Nil fields are left
// unchanged on update.
type PostInput struct {
	Title    *string
	Contents *string
}

type BoardService interface {
	Create(ctx context.Context, p Principal, title, contents string) (*model.BoardPost, error)
	Get(ctx context.Context, id uint) (*model.BoardPost, error)
	List(ctx context.Context, query model.BoardQuery, page Page) ([]model.BoardPost, int64, error)
	Update(ctx context.Context, p Principal, id uint, input PostInput) (*model.BoardPost, error)
	Delete(ctx context.Context, p Principal, id uint) error
}

type boardService struct {
	boardRepo repository.BoardRepository
}

func NewBoardService(boardRepo repository.BoardRepository) BoardService {
	return &boardService{boardRepo: boardRepo}
}

func (s *boardService) Create(ctx context.Context, p Principal, title, contents string) (*model.BoardPost, error) {
	title = strings.TrimSpace(title)
	contents = strings.TrimSpace(contents)
	if title == "" || contents == "" {
		return nil, ErrEmptyPost
	}

	post := &model.BoardPost{
		UserID:   p.UserID,
		Title:    title,
		Contents: contents,
	}
	if err := s.boardRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	logger.Info("Board post created", map[string]interface{}{
		"post_id": post.ID,
		"user_id": p.UserID,
	})
	return post, nil
}

// Get returns the post and counts the view. A failed counter update is only
// logged.
func (s *boardService) Get(ctx context.Context, id uint) (*model.BoardPost, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.boardRepo.IncrementViewCount(ctx, id); err != nil {
		logger.Warn("Failed to increment view count", map[string]interface{}{
			"post_id": id,
			"error":   err.Error(),
		})
	} else {
		post.ViewCount++
	}
	return post, nil
}

func (s *boardService) List(ctx context.Context, query model.BoardQuery, page Page) ([]model.BoardPost, int64, error) {
	page = page.Normalize()
	query.Search = strings.TrimSpace(query.Search)
	return s.boardRepo.FindAll(ctx, query, page.Size, page.Offset())
}

// Update is allowed for the author and for admins.
func (s *boardService) Update(ctx context.Context, p Principal, id uint, input PostInput) (*model.BoardPost, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Owns(post.UserID) {
		return nil, ErrForbidden
	}

	if input.Title != nil {
		post.Title = strings.TrimSpace(*input.Title)
	}
	if input.Contents != nil {
		post.Contents = strings.TrimSpace(*input.Contents)
	}
	if post.Title == "" || post.Contents == "" {
		return nil, ErrEmptyPost
	}

	if err := s.boardRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *boardService) Delete(ctx context.Context, p Principal, id uint) error {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return err
	}
	if !p.Owns(post.UserID) {
		return ErrForbidden
	}

	if err := s.boardRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Board post deleted", map[string]interface{}{
		"post_id": id,
		"user_id": p.UserID,
	})
	return nil
}

func (s *boardService) findPost(ctx context.Context, id uint) (*model.BoardPost, error) {
	post, err := s.boardRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}
