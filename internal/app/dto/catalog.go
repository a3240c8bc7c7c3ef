package dto

import (
	"time"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/internal/app/service"
	"github.com/shopspring/decimal"
)

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type OptionResponse struct {
	ID            uint            `json:"id"`
	ProductID     uint            `json:"product_id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
}

type FileResponse struct {
	ID          uint   `json:"id"`
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
}

type ProductResponse struct {
	ID          uint              `json:"id"`
	Category    *CategoryResponse `json:"category,omitempty"`
	CategoryID  uint              `json:"category_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       decimal.Decimal   `json:"price"`
	DeliveryFee decimal.Decimal   `json:"delivery_fee"`
	Materials   []string          `json:"materials"`
	Options     []OptionResponse  `json:"options"`
	Files       []FileResponse    `json:"files"`
	CreatedAt   time.Time         `json:"created_at"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Size     int               `json:"size"`
}

type CommentResponse struct {
	ID        uint           `json:"id"`
	ProductID uint           `json:"product_id"`
	UserID    uint           `json:"user_id"`
	UserName  string         `json:"user_name"`
	Content   string         `json:"content"`
	Rating    int            `json:"rating"`
	Files     []FileResponse `json:"files"`
	CreatedAt time.Time      `json:"created_at"`
}

type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
	Total    int64             `json:"total"`
}

type CartItemResponse struct {
	ID         uint            `json:"id"`
	OptionID   uint            `json:"option_id"`
	OptionName string          `json:"option_name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	LinePrice  decimal.Decimal `json:"line_price"`
}

type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	TotalCount int                `json:"total_count"`
}

func NewCategoryResponses(categories []model.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out
}

func NewOptionResponse(o *model.Option) OptionResponse {
	return OptionResponse{
		ID:            o.ID,
		ProductID:     o.ProductID,
		Name:          o.Name,
		Price:         o.Price,
		StockQuantity: o.StockQuantity,
	}
}

func NewOptionResponses(options []model.Option) []OptionResponse {
	out := make([]OptionResponse, 0, len(options))
	for i := range options {
		out = append(out, NewOptionResponse(&options[i]))
	}
	return out
}

func NewProductFileResponse(f *model.ProductFile) FileResponse {
	return FileResponse{ID: f.ID, Key: f.Key, URL: f.URL, ContentType: f.ContentType}
}

func NewCommentFileResponse(f *model.CommentFile) FileResponse {
	return FileResponse{ID: f.ID, Key: f.Key, URL: f.URL, ContentType: f.ContentType}
}

func NewProductResponse(p *model.Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		DeliveryFee: p.DeliveryFee,
		Materials:   []string(p.Materials),
		Options:     NewOptionResponses(p.Options),
		Files:       make([]FileResponse, 0, len(p.Files)),
		CreatedAt:   p.CreatedAt,
	}
	if resp.Materials == nil {
		resp.Materials = []string{}
	}
	if p.Category != nil {
		resp.Category = &CategoryResponse{ID: p.Category.ID, Name: p.Category.Name}
	}
	for i := range p.Files {
		resp.Files = append(resp.Files, NewProductFileResponse(&p.Files[i]))
	}
	return resp
}

func NewProductListResponse(products []model.Product, total int64, page, size int) ProductListResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, NewProductResponse(&products[i]))
	}
	return ProductListResponse{Products: out, Total: total, Page: page, Size: size}
}

func NewCommentResponse(c *model.ProductComment) CommentResponse {
	resp := CommentResponse{
		ID:        c.ID,
		ProductID: c.ProductID,
		UserID:    c.UserID,
		UserName:  c.User.Name,
		Content:   c.Content,
		Rating:    c.Rating,
		Files:     make([]FileResponse, 0, len(c.Files)),
		CreatedAt: c.CreatedAt,
	}
	for i := range c.Files {
		resp.Files = append(resp.Files, NewCommentFileResponse(&c.Files[i]))
	}
	return resp
}

func NewCommentListResponse(comments []model.ProductComment, total int64) CommentListResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, NewCommentResponse(&comments[i]))
	}
	return CommentListResponse{Comments: out, Total: total}
}

func NewCartItemResponse(item *model.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:         item.ID,
		OptionID:   item.OptionID,
		OptionName: item.Option.Name,
		UnitPrice:  item.Option.Price,
		Quantity:   item.Quantity,
		LinePrice:  service.LinePrice(item.Option.Price, item.Quantity),
	}
}

func NewCartResponse(snapshot *service.CartSnapshot) CartResponse {
	items := make([]CartItemResponse, 0, len(snapshot.Items))
	for i := range snapshot.Items {
		items = append(items, NewCartItemResponse(&snapshot.Items[i]))
	}
	return CartResponse{Items: items, TotalPrice: snapshot.TotalPrice, TotalCount: snapshot.TotalCount}
}
