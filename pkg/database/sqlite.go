package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"go-commerce-api/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultDBFile = "gestion_commerciale.db"

// Open opens (or creates) the embedded database file at path. Foreign key
// enforcement is switched on in the DSN so every pooled connection gets it
// for its whole lifetime, and TranslateError lets callers match unique/FK
// violations as gorm sentinel errors.
func Open(path string) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// A single interactive user is expected; one writer at a time keeps
	// SQLite's locking out of the picture.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// ConnectDB resolves the database path from the environment and opens it,
// aborting the process on failure.
func ConnectDB() *gorm.DB {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = defaultDBFile
	}

	db, err := Open(path)
	if err != nil {
		log.Fatal("Failed to connect to database. \n", err)
	}

	log.Println("Database connection established:", path)
	return db
}

// Migrate creates the five tables with their foreign-key and check
// constraints. Safe to call on every start.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Customer{},
		&model.Product{},
		&model.Purchase{},
		&model.Sale{},
		&model.SaleItem{},
	)
}

// Reset irreversibly wipes all persisted state and recreates the schema
// from scratch, leaving the database as on a first run. Confirmation
// gating belongs to the caller boundary, not here.
func Reset(db *gorm.DB) error {
	// Children before parents so RESTRICT constraints cannot block the drop.
	if err := db.Migrator().DropTable(
		&model.SaleItem{},
		&model.Sale{},
		&model.Purchase{},
		&model.Product{},
		&model.Customer{},
	); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	return Migrate(db)
}
