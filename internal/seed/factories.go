package seed

import (
	"fmt"
	"time"

	"myboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the plaintext password every seeded account gets, so
// developers can log in as any of them.
const DefaultPassword = "password"

// Factory builds and persists randomized records.
type Factory struct {
	db     *gorm.DB
	digest string
}

func NewFactory(db *gorm.DB) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())

	// bcrypt once; hashing per account makes large seeds crawl
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return &Factory{db: db, digest: string(hash)}
}

// CreateAccount persists an account with fake profile data.
func (f *Factory) CreateAccount(overrides ...func(*models.Account)) (*models.Account, error) {
	acct := &models.Account{
		UserID:   gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Password: f.digest,
		Group:    gofakeit.RandomString([]string{"member", "member", "member", "staff"}),
		Email:    gofakeit.Email(),
	}
	for _, override := range overrides {
		override(acct)
	}
	if err := f.db.Create(acct).Error; err != nil {
		return nil, err
	}
	return acct, nil
}

// CreatePost persists a post for the given writer.
func (f *Factory) CreatePost(writer string, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Writer:  writer,
		Title:   gofakeit.Sentence(5),
		Content: gofakeit.Paragraph(1, 3, 5, "\n"),
	}
	if gofakeit.Bool() {
		post.ImagePath = fmt.Sprintf("/image/%s.jpg", gofakeit.UUID())
	}
	for _, override := range overrides {
		override(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}
