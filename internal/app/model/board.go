package model

import (
	"time"

	"gorm.io/gorm"
)

// BoardPost 게시판 글
type BoardPost struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title     string `gorm:"type:varchar(200);not null" json:"title"`
	Contents  string `gorm:"type:text;not null" json:"contents"`
	ViewCount int    `gorm:"default:0" json:"view_count"`

	// 작성자
	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (BoardPost) TableName() string {
	return "board_posts"
}

// BoardQuery 게시글 목록 조회 조건
type BoardQuery struct {
	UserID *uint
	Search string // 제목+내용 검색
}
