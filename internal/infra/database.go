package infra

import (
	"fmt"

	"rentalbaju/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate,
// then applies the partial indexes GORM cannot express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates/updates all tables and the uniqueness backstops. Also
// used by integration tests against a disposable database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Material{},
		&model.Color{},
		&model.Product{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches creates the partial unique indexes that back the
// service-level uniqueness guards. The guards are check-then-act, so these
// indexes are the authoritative last line of defense under concurrency.
// Every statement is idempotent.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Product code unique among active rows only; a soft-deleted product
		// frees its code for reuse.
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_products_code_active
		     ON products (code) WHERE is_active = true`,
		// Material / color names unique case-insensitively among active rows.
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_materials_name_active
		     ON materials (lower(name)) WHERE is_active = true`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_colors_name_active
		     ON colors (lower(name)) WHERE is_active = true`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
