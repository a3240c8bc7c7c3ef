package model

import (
	"time"

	"gorm.io/gorm"
)

type ProductComment struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Rating    int            `gorm:"not null;check:chk_comment_rating,rating BETWEEN 1 AND 5" json:"rating"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User  User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Files []CommentFile `gorm:"foreignKey:CommentID" json:"files,omitempty"`
}

func (ProductComment) TableName() string {
	return "product_comments"
}

type CommentFile struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CommentID   uint      `gorm:"not null;index" json:"comment_id"`
	Key         string    `gorm:"not null;size:512" json:"key"`
	URL         string    `gorm:"not null" json:"url"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

func (CommentFile) TableName() string {
	return "comment_files"
}
