package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"snipurl-platform/internal/model"
)

// OpenMySQL connects to the production store. TranslateError is enabled so
// unique-index violations surface as gorm.ErrDuplicatedKey regardless of driver.
func OpenMySQL(host string, port int, user, password, dbName string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, password, host, port, dbName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("mysql connect: %w", err)
	}
	return db, Migrate(db)
}

// OpenSQLite opens an embedded store, used for development and tests.
// Pass "file::memory:?cache=shared" for an in-memory database.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	return db, Migrate(db)
}

// Migrate creates or updates the two core tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Link{},
		&model.ClickEvent{},
	)
}
