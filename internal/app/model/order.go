package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderCheckStatus string // 재고 처리 상태

const (
	OrderCheckPending  OrderCheckStatus = "pending"  // 재고 미차감
	OrderCheckDeducted OrderCheckStatus = "deducted" // 재고 차감 완료
	OrderCheckRestored OrderCheckStatus = "restored" // 재고 복원 완료
)

// Order carries its own status flag: Ordered is false while checkout is still
// writing line items and true once the order has been placed.
type Order struct {
	ID         uint            `gorm:"primarykey" json:"id"`                           // 주문 ID
	UserID     uint            `gorm:"not null;index" json:"user_id"`                  // 주문자 ID
	Ordered    bool            `gorm:"not null;default:false" json:"ordered"`          // 주문 확정 여부
	TotalPrice decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_price"` // 총 상품 금액
	OrderedAt  *time.Time      `json:"ordered_at,omitempty"`                           // 주문 확정 시각
	CreatedAt  time.Time       `json:"created_at"`                                     // 생성 시각
	UpdatedAt  time.Time       `json:"updated_at"`                                     // 수정 시각

	User   User         `gorm:"foreignKey:UserID" json:"-"`                                            // 주문자 정보
	Items  []Item       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"` // 주문 항목 목록
	Checks []OrderCheck `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`               // 재고 처리 내역
}

func (Order) TableName() string {
	return "orders"
}

type Item struct {
	ID        uint            `gorm:"primarykey" json:"id"`                     // 주문 항목 ID
	OrderID   uint            `gorm:"not null;index" json:"order_id"`           // 주문 ID
	OptionID  uint            `gorm:"not null;index" json:"option_id"`          // 옵션 ID
	Quantity  int             `gorm:"not null" json:"quantity"`                 // 수량
	Price     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"price"` // 단가 x 수량
	CreatedAt time.Time       `json:"created_at"`                               // 생성 시각

	Option Option `gorm:"foreignKey:OptionID" json:"option,omitempty"` // 옵션 정보
}

func (Item) TableName() string {
	return "order_items"
}

// OrderCheck records one stock mutation request tied to an order line.
type OrderCheck struct {
	ID        uint             `gorm:"primarykey" json:"id"`
	OrderID   uint             `gorm:"not null;index" json:"order_id"`
	OptionID  uint             `gorm:"not null;index" json:"option_id"`
	Quantity  int              `gorm:"not null" json:"quantity"`
	Status    OrderCheckStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	Option Option `gorm:"foreignKey:OptionID" json:"option,omitempty"`
}

func (OrderCheck) TableName() string {
	return "order_checks"
}
