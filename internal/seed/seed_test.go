package seed

import (
	"testing"

	"myboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Account{}, &models.Post{}, &models.Friend{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func TestSeeder_SeedBoard(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db)

	accounts, err := s.SeedBoard(SeedOptions{NumAccounts: 5, NumPosts: 20})
	require.NoError(t, err)
	assert.Len(t, accounts, 5)

	var accountCount, postCount int64
	db.Model(&models.Account{}).Count(&accountCount)
	db.Model(&models.Post{}).Count(&postCount)
	assert.EqualValues(t, 5, accountCount)
	assert.EqualValues(t, 20, postCount)

	// every seeded account can log in with the default password
	for _, acct := range accounts {
		assert.NoError(t, bcrypt.CompareHashAndPassword(
			[]byte(acct.Password), []byte(DefaultPassword)))
	}

	// no self edges
	var selfEdges int64
	db.Model(&models.Friend{}).Where("user_id = friend_id").Count(&selfEdges)
	assert.Zero(t, selfEdges)

	// every post's writer is a seeded account
	var orphans int64
	db.Model(&models.Post{}).
		Where("writer NOT IN (?)", db.Model(&models.Account{}).Select("user_id")).
		Count(&orphans)
	assert.Zero(t, orphans)
}

func TestSeeder_ClearAll(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db)

	_, err := s.SeedBoard(SeedOptions{NumAccounts: 3, NumPosts: 5})
	require.NoError(t, err)
	require.NoError(t, s.ClearAll())

	for _, model := range []interface{}{&models.Account{}, &models.Post{}, &models.Friend{}} {
		var count int64
		db.Model(model).Count(&count)
		assert.Zero(t, count)
	}
}
