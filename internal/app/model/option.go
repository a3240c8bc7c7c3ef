package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Option struct {
	ID            uint            `gorm:"primarykey" json:"id"`                                                                 // 옵션 ID
	ProductID     uint            `gorm:"index;not null" json:"product_id"`                                                     // 소속 상품 ID
	Name          string          `gorm:"not null" json:"name"`                                                                 // 옵션명 (예: 월넛 / 1200mm)
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`                                             // 옵션 단가
	StockQuantity int             `gorm:"not null;default:0;check:chk_options_stock,stock_quantity >= 0" json:"stock_quantity"` // 재고 (음수 불가)
	CreatedAt     time.Time       `json:"created_at"`                                                                           // 생성 시각
	UpdatedAt     time.Time       `json:"updated_at"`                                                                           // 수정 시각
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`                                                                       // 삭제 시각(소프트 삭제)

	Product *Product `gorm:"foreignKey:ProductID" json:"-"` // 소속 상품 정보
}

func (Option) TableName() string {
	return "options"
}
