package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/internal/app/repository"
	"github.com/ikkim/furniture-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// 시트 컬럼 순서
const (
	colCategory = iota
	colProduct
	colDescription
	colPrice
	colDeliveryFee
	colMaterials
	colOption
	colOptionPrice
	colStock
	columnCount
)

type catalogOption struct {
	Name  string
	Price decimal.Decimal
	Stock int
}

type catalogProduct struct {
	Category    string
	Name        string
	Description string
	Price       decimal.Decimal
	DeliveryFee decimal.Decimal
	Materials   []string
	Options     []catalogOption
}

type importSummary struct {
	Categories int
	Products   int
	Options    int
}

func readCatalogFromXLSX(filePath string) ([]catalogProduct, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	// 첫 번째 시트 이름 가져오기
	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return parseCatalogRows(rows)
}

// parseCatalogRows groups option rows under their product. A product is
// identified by category and name; its price columns are taken from the
// first row that mentions it.
func parseCatalogRows(rows [][]string) ([]catalogProduct, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []*catalogProduct
	index := make(map[string]*catalogProduct)
	skipped := 0

	// 첫 행은 헤더
	for i, row := range rows[1:] {
		line := i + 2
		if len(row) < columnCount {
			skipped++
			continue
		}

		category := strings.TrimSpace(row[colCategory])
		name := strings.TrimSpace(row[colProduct])
		optionName := strings.TrimSpace(row[colOption])
		if category == "" || name == "" || optionName == "" {
			skipped++
			continue
		}

		key := strings.ToLower(category) + "|" + strings.ToLower(name)
		product, ok := index[key]
		if !ok {
			price, err := parseAmount(row[colPrice])
			if err != nil {
				return nil, fmt.Errorf("row %d: price: %w", line, err)
			}
			fee, err := parseAmount(row[colDeliveryFee])
			if err != nil {
				return nil, fmt.Errorf("row %d: delivery fee: %w", line, err)
			}
			product = &catalogProduct{
				Category:    category,
				Name:        name,
				Description: strings.TrimSpace(row[colDescription]),
				Price:       price,
				DeliveryFee: fee,
				Materials:   splitMaterials(row[colMaterials]),
			}
			index[key] = product
			products = append(products, product)
		}

		optionPrice, err := parseAmount(row[colOptionPrice])
		if err != nil {
			return nil, fmt.Errorf("row %d: option price: %w", line, err)
		}
		stock, err := strconv.Atoi(strings.TrimSpace(row[colStock]))
		if err != nil || stock < 0 {
			return nil, fmt.Errorf("row %d: invalid stock %q", line, row[colStock])
		}

		product.Options = append(product.Options, catalogOption{
			Name:  optionName,
			Price: optionPrice,
			Stock: stock,
		})
	}

	if skipped > 0 {
		fmt.Printf("Skipped rows: %d\n", skipped)
	}

	result := make([]catalogProduct, 0, len(products))
	for _, p := range products {
		result = append(result, *p)
	}
	return result, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %s", raw)
	}
	return amount, nil
}

func splitMaterials(raw string) []string {
	var materials []string
	for _, m := range strings.Split(raw, ",") {
		if m = strings.TrimSpace(m); m != "" {
			materials = append(materials, m)
		}
	}
	return materials
}

// importCatalog writes the whole catalog in one transaction. Existing
// categories are reused; products are always created.
func importCatalog(ctx context.Context, conn *gorm.DB, products []catalogProduct) (importSummary, error) {
	var summary importSummary

	err := db.WithTransaction(ctx, conn, db.DefaultTxOptions(), func(tx *gorm.DB) error {
		summary = importSummary{}
		categoryRepo := repository.NewCategoryRepository(tx)
		productRepo := repository.NewProductRepository(tx)
		optionRepo := repository.NewOptionRepository(tx)

		categoryIDs := make(map[string]uint)
		for _, p := range products {
			categoryID, ok := categoryIDs[p.Category]
			if !ok {
				category, err := categoryRepo.FindByName(ctx, p.Category)
				switch {
				case errors.Is(err, gorm.ErrRecordNotFound):
					category = &model.Category{Name: p.Category}
					if err := categoryRepo.Create(ctx, category); err != nil {
						return err
					}
					summary.Categories++
				case err != nil:
					return err
				}
				categoryID = category.ID
				categoryIDs[p.Category] = categoryID
			}

			product := &model.Product{
				CategoryID:  categoryID,
				Name:        p.Name,
				Description: p.Description,
				Price:       p.Price,
				DeliveryFee: p.DeliveryFee,
				Materials:   model.StringList(p.Materials),
			}
			if err := productRepo.Create(ctx, product); err != nil {
				return err
			}
			summary.Products++

			for _, o := range p.Options {
				option := &model.Option{
					ProductID:     product.ID,
					Name:          o.Name,
					Price:         o.Price,
					StockQuantity: o.Stock,
				}
				if err := optionRepo.Create(ctx, option); err != nil {
					return err
				}
				summary.Options++
			}
		}
		return nil
	})

	return summary, err
}
