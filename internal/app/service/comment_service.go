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
	ErrCommentNotFound = errors.New("comment not found")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrEmptyComment    = errors.New("comment content is empty")
)

type CommentService interface {
	Create(ctx context.Context, p Principal, productID uint, content string, rating int) (*model.ProductComment, error)
	ListByProduct(ctx context.Context, productID uint, page Page) ([]model.ProductComment, int64, error)
	Delete(ctx context.Context, p Principal, id uint) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	productRepo repository.ProductRepository
}

func NewCommentService(commentRepo repository.CommentRepository, productRepo repository.ProductRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		productRepo: productRepo,
	}
}

func (s *commentService) Create(ctx context.Context, p Principal, productID uint, content string, rating int) (*model.ProductComment, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	comment := &model.ProductComment{
		ProductID: productID,
		UserID:    p.UserID,
		Content:   content,
		Rating:    rating,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	logger.Info("Comment created", map[string]interface{}{
		"comment_id": comment.ID,
		"product_id": productID,
		"user_id":    p.UserID,
	})
	return comment, nil
}

func (s *commentService) ListByProduct(ctx context.Context, productID uint, page Page) ([]model.ProductComment, int64, error) {
	page = page.Normalize()
	return s.commentRepo.FindByProductID(ctx, productID, page.Size, page.Offset())
}

// Delete is allowed for the author and for admins.
func (s *commentService) Delete(ctx context.Context, p Principal, id uint) error {
	comment, err := findComment(ctx, s.commentRepo, id)
	if err != nil {
		return err
	}
	if !p.Owns(comment.UserID) {
		return ErrForbidden
	}
	return s.commentRepo.Delete(ctx, id)
}

func findComment(ctx context.Context, comments repository.CommentRepository, id uint) (*model.ProductComment, error) {
	comment, err := comments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}
