package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/internal/app/repository"
	"github.com/ikkim/furniture-backend/internal/storage"
	"github.com/ikkim/furniture-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrStorageUnavailable = errors.New("file storage is not configured")
	ErrInvalidFileKey     = errors.New("file key does not belong to this resource")
)

// FileStorage issues upload URLs for object storage.
type FileStorage interface {
	PresignUpload(ctx context.Context, folder, filename, contentType string) (*storage.PresignedUpload, error)
	FileURL(key string) string
}

type FileService interface {
	PresignProductFile(ctx context.Context, p Principal, productID uint, filename, contentType string) (*storage.PresignedUpload, error)
	RegisterProductFile(ctx context.Context, p Principal, productID uint, key, contentType string) (*model.ProductFile, error)
	PresignCommentFile(ctx context.Context, p Principal, commentID uint, filename, contentType string) (*storage.PresignedUpload, error)
	RegisterCommentFile(ctx context.Context, p Principal, commentID uint, key, contentType string) (*model.CommentFile, error)
}

type fileService struct {
	storage     FileStorage
	productRepo repository.ProductRepository
	commentRepo repository.CommentRepository
}

func NewFileService(fs FileStorage, productRepo repository.ProductRepository, commentRepo repository.CommentRepository) FileService {
	return &fileService{
		storage:     fs,
		productRepo: productRepo,
		commentRepo: commentRepo,
	}
}

func productFolder(productID uint) string { return fmt.Sprintf("products/%d", productID) }
func commentFolder(commentID uint) string { return fmt.Sprintf("comments/%d", commentID) }

func (s *fileService) PresignProductFile(ctx context.Context, p Principal, productID uint, filename, contentType string) (*storage.PresignedUpload, error) {
	if err := s.checkProduct(ctx, p, productID); err != nil {
		return nil, err
	}
	return s.storage.PresignUpload(ctx, productFolder(productID), filename, contentType)
}

func (s *fileService) RegisterProductFile(ctx context.Context, p Principal, productID uint, key, contentType string) (*model.ProductFile, error) {
	if err := s.checkProduct(ctx, p, productID); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(key, productFolder(productID)+"/") {
		return nil, ErrInvalidFileKey
	}

	file := &model.ProductFile{
		ProductID:   productID,
		Key:         key,
		URL:         s.storage.FileURL(key),
		ContentType: contentType,
	}
	if err := s.productRepo.CreateFile(ctx, file); err != nil {
		return nil, err
	}

	logger.Info("Product file registered", map[string]interface{}{
		"product_id": productID,
		"key":        key,
	})
	return file, nil
}

func (s *fileService) PresignCommentFile(ctx context.Context, p Principal, commentID uint, filename, contentType string) (*storage.PresignedUpload, error) {
	if err := s.checkComment(ctx, p, commentID); err != nil {
		return nil, err
	}
	return s.storage.PresignUpload(ctx, commentFolder(commentID), filename, contentType)
}

func (s *fileService) RegisterCommentFile(ctx context.Context, p Principal, commentID uint, key, contentType string) (*model.CommentFile, error) {
	if err := s.checkComment(ctx, p, commentID); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(key, commentFolder(commentID)+"/") {
		return nil, ErrInvalidFileKey
	}

	file := &model.CommentFile{
		CommentID:   commentID,
		Key:         key,
		URL:         s.storage.FileURL(key),
		ContentType: contentType,
	}
	if err := s.commentRepo.CreateFile(ctx, file); err != nil {
		return nil, err
	}
	return file, nil
}

func (s *fileService) checkProduct(ctx context.Context, p Principal, productID uint) error {
	if s.storage == nil {
		return ErrStorageUnavailable
	}
	if !p.IsAdmin() {
		return ErrForbidden
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

func (s *fileService) checkComment(ctx context.Context, p Principal, commentID uint) error {
	if s.storage == nil {
		return ErrStorageUnavailable
	}
	comment, err := findComment(ctx, s.commentRepo, commentID)
	if err != nil {
		return err
	}
	if !p.Owns(comment.UserID) {
		return ErrForbidden
	}
	return nil
}
