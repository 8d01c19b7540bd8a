// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"myboard/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListByWriters(ctx context.Context, writers []string) ([]models.Post, error)
	UpdateOwned(ctx context.Context, id uint, writer, title, content string) (bool, error)
	DeleteOwned(ctx context.Context, id uint, writer string) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// ListByWriters returns all posts whose writer is in the given set, newest
// first.
func (r *postRepository) ListByWriters(ctx context.Context, writers []string) ([]models.Post, error) {
	if len(writers) == 0 {
		return nil, nil
	}
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Where("writer IN ?", writers).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// UpdateOwned updates title and content of a post only when the given writer
// owns it, as a single conditional UPDATE. The ownership predicate runs inside
// the statement, so there is no find-then-update window. Returns false when no
// row matched (wrong owner or no such post).
func (r *postRepository) UpdateOwned(ctx context.Context, id uint, writer, title, content string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND writer = ?", id, writer).
		Updates(map[string]interface{}{
			"title":   title,
			"content": content,
		})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteOwned physically removes a post only when the given writer owns it,
// as a single conditional DELETE. Returns false when no row matched.
func (r *postRepository) DeleteOwned(ctx context.Context, id uint, writer string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND writer = ?", id, writer).
		Delete(&models.Post{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Exists reports whether any post with the given id exists, regardless of
// writer. Used to distinguish "not yours" from "gone" after a conditional
// update or delete matched nothing.
func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
