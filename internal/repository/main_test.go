package repository

import (
	"testing"

	"myboard/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Account{},
		&models.Post{},
		&models.Friend{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}
