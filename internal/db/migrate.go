package db

import (
	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table managed by AutoMigrate, parents first.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.ProductFile{},
		&model.Option{},
		&model.CartItem{},
		&model.Order{},
		&model.Item{},
		&model.OrderCheck{},
		&model.ProductComment{},
		&model.CommentFile{},
		&model.BoardPost{},
	}
}

// Migrate runs database migrations
func Migrate() error {
	return MigrateDB(DB)
}

// MigrateDB migrates and seeds the given connection.
func MigrateDB(conn *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := conn.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(conn); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData(DB)
}

func seedInitialData(conn *gorm.DB) error {
	logger.Info("Seeding initial data...")

	// 기본 카테고리 (상품 등록에 필요)
	if err := seedCategories(conn); err != nil {
		logger.Error("Failed to seed categories", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

var defaultCategories = []string{"sofa", "table", "chair", "bed", "storage", "lighting"}

func seedCategories(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Categories already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	categories := make([]model.Category, 0, len(defaultCategories))
	for _, name := range defaultCategories {
		categories = append(categories, model.Category{Name: name})
	}
	if err := conn.Create(&categories).Error; err != nil {
		return err
	}

	logger.Info("Categories seeded successfully", map[string]interface{}{
		"total_records": len(categories),
	})
	return nil
}
