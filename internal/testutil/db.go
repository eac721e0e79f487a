// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"restaurant/internal/database"
	"restaurant/internal/models"
)

var dbSeq atomic.Int64

// OpenDB returns a migrated in-memory SQLite database private to the test.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// one connection keeps the in-memory database alive and serializes access
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// SeedMenuItem inserts a menu row with the given id and price.
func SeedMenuItem(t testing.TB, db *gorm.DB, id uint, name, price string) models.MenuItem {
	t.Helper()

	item := models.MenuItem{ID: id, Name: name, Price: decimal.RequireFromString(price)}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed menu item: %v", err)
	}
	return item
}

// SeedUser inserts a user row with the given id and email.
func SeedUser(t testing.TB, db *gorm.DB, id uint, email string) models.User {
	t.Helper()

	user := models.User{ID: id, Email: email, Name: strings.Split(email, "@")[0]}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}
