package model

import (
	"time"
)

type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_option" json:"user_id"`
	OptionID  uint      `gorm:"not null;uniqueIndex:idx_cart_user_option" json:"option_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Option Option `gorm:"foreignKey:OptionID" json:"option,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
