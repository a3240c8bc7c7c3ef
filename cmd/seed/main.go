package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ikkim/furniture-backend/config"
	"github.com/ikkim/furniture-backend/internal/db"
	"github.com/ikkim/furniture-backend/pkg/logger"
)

func main() {
	// 명령줄 인자 확인
	if len(os.Args) < 2 {
		logger.Fatal("Usage: go run ./cmd/seed <xlsx_file_path>", errors.New("missing xlsx path"))
	}

	filePath := os.Args[1]

	logger.Initialize(logger.Config{Level: "info", Format: "console", EnableColor: true, Service: "furniture-seed"})

	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	// DB 연결
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// XLSX 파일 읽기
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readCatalogFromXLSX(filePath)
	if err != nil {
		logger.Fatal("Failed to read XLSX", err, map[string]interface{}{
			"path": filePath,
		})
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	// 사용자 확인
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	summary, err := importCatalog(context.Background(), db.GetDB(), products)
	if err != nil {
		logger.Fatal("Failed to import catalog", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("  Categories created: %d\n", summary.Categories)
	fmt.Printf("  Products created: %d\n", summary.Products)
	fmt.Printf("  Options created: %d\n", summary.Options)
}
