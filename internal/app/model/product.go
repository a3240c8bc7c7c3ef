package model

import (
	"database/sql/driver"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringList is stored as text[] on PostgreSQL and as a text literal elsewhere.
type StringList pq.StringArray

func (l StringList) Value() (driver.Value, error) {
	return pq.StringArray(l).Value()
}

func (l *StringList) Scan(src interface{}) error {
	return (*pq.StringArray)(l).Scan(src)
}

func (StringList) GormDataType() string {
	return "text[]"
}

func (StringList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

type Product struct {
	ID          uint            `gorm:"primarykey" json:"id"`                            // 상품 ID
	CategoryID  uint            `gorm:"not null;index" json:"category_id"`               // 카테고리 ID
	Name        string          `gorm:"not null" json:"name"`                            // 상품명
	Description string          `gorm:"type:text" json:"description"`                    // 상품 설명
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`        // 기본 가격
	DeliveryFee decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"delivery_fee"` // 배송비
	Materials   StringList      `json:"materials"`                                       // 소재 목록 (예: ["oak", "linen"])
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	Category *Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Options  []Option      `gorm:"foreignKey:ProductID" json:"options,omitempty"`
	Files    []ProductFile `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// ProductFile is an uploaded object in the file bucket that belongs to a product.
type ProductFile struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ProductID   uint      `gorm:"not null;index" json:"product_id"`
	Key         string    `gorm:"not null;size:512" json:"key"`
	URL         string    `gorm:"not null" json:"url"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ProductFile) TableName() string {
	return "product_files"
}
