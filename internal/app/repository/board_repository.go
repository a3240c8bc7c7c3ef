package repository

import (
	"context"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/pkg/logger"
	"gorm.io/gorm"
)

type BoardRepository interface {
	Create(ctx context.Context, post *model.BoardPost) error
	FindByID(ctx context.Context, id uint) (*model.BoardPost, error)
	FindAll(ctx context.Context, query model.BoardQuery, limit, offset int) ([]model.BoardPost, int64, error)
	Update(ctx context.Context, post *model.BoardPost) error
	Delete(ctx context.Context, id uint) error
	IncrementViewCount(ctx context.Context, id uint) error
}

type boardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

func (r *boardRepository) Create(ctx context.Context, post *model.BoardPost) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(post).Error; err != nil {
		logger.Error("Failed to create board post in database", err, map[string]interface{}{
			"user_id": post.UserID,
		})
		return err
	}

	// 작성자 정보와 함께 다시 조회
	return r.db.WithContext(ctx).Preload("User").First(post, post.ID).Error
}

func (r *boardRepository) FindByID(ctx context.Context, id uint) (*model.BoardPost, error) {
	var post model.BoardPost
	if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *boardRepository) FindAll(ctx context.Context, query model.BoardQuery, limit, offset int) ([]model.BoardPost, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.BoardPost{})
	if query.UserID != nil {
		q = q.Where("user_id = ?", *query.UserID)
	}
	if query.Search != "" {
		like := "%" + query.Search + "%"
		q = q.Where("LOWER(title) LIKE LOWER(?) OR LOWER(contents) LIKE LOWER(?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.BoardPost
	q = q.Preload("User").Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&posts).Error; err != nil {
		logger.Error("Failed to find board posts in database", err, map[string]interface{}{
			"search": query.Search,
		})
		return nil, 0, err
	}
	return posts, total, nil
}

// Update writes title and contents only; counters are left alone.
func (r *boardRepository) Update(ctx context.Context, post *model.BoardPost) error {
	err := r.db.WithContext(ctx).Model(post).
		Select("title", "contents", "updated_at").
		Updates(post).Error
	if err != nil {
		logger.Error("Failed to update board post in database", err, map[string]interface{}{
			"post_id": post.ID,
		})
	}
	return err
}

// Delete 소프트 삭제
func (r *boardRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.BoardPost{}, id).Error; err != nil {
		logger.Error("Failed to delete board post from database", err, map[string]interface{}{
			"post_id": id,
		})
		return err
	}
	return nil
}

func (r *boardRepository) IncrementViewCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.BoardPost{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).
		Error
}
