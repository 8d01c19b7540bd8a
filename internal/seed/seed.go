// Package seed populates the database with development data.
package seed

import (
	"fmt"
	"math/rand"

	"myboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedOptions controls the size of the generated data set.
type SeedOptions struct {
	NumAccounts int
	NumPosts    int
}

// Seeder wraps a database handle with seeding operations.
type Seeder struct {
	db *gorm.DB
}

func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll removes all seeded data. Order matters: friend edges and posts
// reference accounts by user id.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"friends", "posts", "accounts"} {
		if err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// SeedBoard creates accounts, posts attributed to them, and a random friend
// mesh. Returns the created accounts so callers can report credentials.
func (s *Seeder) SeedBoard(opts SeedOptions) ([]models.Account, error) {
	f := NewFactory(s.db)

	accounts := make([]models.Account, 0, opts.NumAccounts)
	for i := 0; i < opts.NumAccounts; i++ {
		acct, err := f.CreateAccount()
		if err != nil {
			return nil, fmt.Errorf("creating account %d: %w", i, err)
		}
		accounts = append(accounts, *acct)
	}

	for i := 0; i < opts.NumPosts; i++ {
		writer := accounts[rand.Intn(len(accounts))]
		if _, err := f.CreatePost(writer.UserID); err != nil {
			return nil, fmt.Errorf("creating post %d: %w", i, err)
		}
	}

	// Each account follows a handful of others. Duplicate picks are fine;
	// the unique index swallows them.
	for _, acct := range accounts {
		n := rand.Intn(4) + 1
		for j := 0; j < n; j++ {
			other := accounts[rand.Intn(len(accounts))]
			if other.UserID == acct.UserID {
				continue
			}
			edge := models.Friend{UserID: acct.UserID, FriendID: other.UserID}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&edge).Error; err != nil {
				return nil, fmt.Errorf("creating friend edge: %w", err)
			}
		}
	}

	return accounts, nil
}
