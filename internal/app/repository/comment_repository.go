package repository

import (
	"context"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/pkg/logger"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.ProductComment) error
	FindByID(ctx context.Context, id uint) (*model.ProductComment, error)
	FindByProductID(ctx context.Context, productID uint, limit, offset int) ([]model.ProductComment, int64, error)
	Delete(ctx context.Context, id uint) error
	CreateFile(ctx context.Context, file *model.CommentFile) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.ProductComment) error {
	logger.Debug("Creating product comment in database", map[string]interface{}{
		"product_id": comment.ProductID,
		"user_id":    comment.UserID,
	})

	if err := r.db.WithContext(ctx).Omit("User", "Files").Create(comment).Error; err != nil {
		logger.Error("Failed to create product comment in database", err, map[string]interface{}{
			"product_id": comment.ProductID,
			"user_id":    comment.UserID,
		})
		return err
	}
	return nil
}

func (r *commentRepository) FindByID(ctx context.Context, id uint) (*model.ProductComment, error) {
	var comment model.ProductComment
	if err := r.db.WithContext(ctx).Preload("User").Preload("Files").First(&comment, id).Error; err != nil {
		logger.Error("Failed to find product comment in database", err, map[string]interface{}{
			"comment_id": id,
		})
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) FindByProductID(ctx context.Context, productID uint, limit, offset int) ([]model.ProductComment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.ProductComment{}).
		Where("product_id = ?", productID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.ProductComment
	query := r.db.WithContext(ctx).
		Preload("User").
		Preload("Files").
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&comments).Error; err != nil {
		logger.Error("Failed to find product comments in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, 0, err
	}

	logger.Debug("Product comments found in database", map[string]interface{}{
		"product_id": productID,
		"count":      len(comments),
	})
	return comments, total, nil
}

// Delete removes the comment's files before the comment itself.
func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&model.CommentFile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ProductComment{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete product comment from database", err, map[string]interface{}{
			"comment_id": id,
		})
		return err
	}

	logger.Debug("Product comment deleted from database", map[string]interface{}{
		"comment_id": id,
	})
	return nil
}

func (r *commentRepository) CreateFile(ctx context.Context, file *model.CommentFile) error {
	if err := r.db.WithContext(ctx).Create(file).Error; err != nil {
		logger.Error("Failed to create comment file in database", err, map[string]interface{}{
			"comment_id": file.CommentID,
		})
		return err
	}
	return nil
}
