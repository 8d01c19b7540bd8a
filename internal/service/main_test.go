package service

import (
	"testing"

	"myboard/internal/models"
	"myboard/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testRepos struct {
	accounts repository.AccountRepository
	posts    repository.PostRepository
	friends  repository.FriendRepository
	db       *gorm.DB
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Account{}, &models.Post{}, &models.Friend{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return testRepos{
		accounts: repository.NewAccountRepository(db),
		posts:    repository.NewPostRepository(db),
		friends:  repository.NewFriendRepository(db),
		db:       db,
	}
}
