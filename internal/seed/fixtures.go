package seed

import (
	"fmt"
	"os"

	"myboard/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixtures is the shape of a YAML fixture file: known accounts with fixed
// credentials, their posts, and friend edges between them.
type Fixtures struct {
	Accounts []FixtureAccount `yaml:"accounts"`
	Posts    []FixturePost    `yaml:"posts"`
	Friends  []FixtureFriend  `yaml:"friends"`
}

type FixtureAccount struct {
	UserID   string `yaml:"userid"`
	Password string `yaml:"password"`
	Group    string `yaml:"group"`
	Email    string `yaml:"email"`
}

type FixturePost struct {
	Writer  string `yaml:"writer"`
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
	Image   string `yaml:"image"`
}

type FixtureFriend struct {
	UserID   string `yaml:"userid"`
	FriendID string `yaml:"friendid"`
}

// LoadFixtures parses a fixture file.
func LoadFixtures(path string) (*Fixtures, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures: %w", err)
	}
	var fx Fixtures
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixtures: %w", err)
	}
	return &fx, nil
}

// Apply upserts the fixtures. Accounts are keyed by user id so re-running
// the seeder refreshes them in place; posts and edges are insert-or-skip.
func (fx *Fixtures) Apply(db *gorm.DB) error {
	for _, a := range fx.Accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		acct := models.Account{
			UserID:   a.UserID,
			Password: string(hash),
			Group:    a.Group,
			Email:    a.Email,
		}
		err = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"password", "group", "email", "updated_at"}),
		}).Create(&acct).Error
		if err != nil {
			return fmt.Errorf("upserting account %s: %w", a.UserID, err)
		}
	}

	for _, p := range fx.Posts {
		post := models.Post{
			Writer:    p.Writer,
			Title:     p.Title,
			Content:   p.Content,
			ImagePath: p.Image,
		}
		var count int64
		db.Model(&models.Post{}).
			Where("writer = ? AND title = ?", p.Writer, p.Title).
			Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&post).Error; err != nil {
			return fmt.Errorf("creating post %q: %w", p.Title, err)
		}
	}

	for _, fr := range fx.Friends {
		edge := models.Friend{UserID: fr.UserID, FriendID: fr.FriendID}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&edge).Error; err != nil {
			return fmt.Errorf("creating friend edge %s->%s: %w", fr.UserID, fr.FriendID, err)
		}
	}

	return nil
}
