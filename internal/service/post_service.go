package service

import (
	"context"

	"myboard/internal/models"
	"myboard/internal/repository"
)

// PostService enforces the post authorization rules: the writer of a new post
// is always the acting identity, and edit/delete require ownership.
type PostService struct {
	posts repository.PostRepository
}

// NewPostService returns a new PostService.
func NewPostService(posts repository.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// Create persists a new post. The writer comes from the session identity and
// never from client input. Title and content are stored as submitted; the
// application performs no content validation. imagePath may be empty.
func (s *PostService) Create(ctx context.Context, writer, title, content, imagePath string) (*models.Post, error) {
	post := &models.Post{
		Writer:    writer,
		Title:     title,
		Content:   content,
		ImagePath: imagePath,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Get returns a single post by id.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// Edit updates title and content of a post owned by writer. Ownership is
// checked inside a single conditional UPDATE; when nothing matches, an
// existence probe decides between Forbidden and NotFound.
func (s *PostService) Edit(ctx context.Context, writer string, id uint, title, content string) error {
	updated, err := s.posts.UpdateOwned(ctx, id, writer, title, content)
	if err != nil {
		return err
	}
	if updated {
		return nil
	}
	return s.classifyMiss(ctx, id)
}

// Delete physically removes a post owned by writer. The ownership predicate is
// part of the DELETE itself, so a concurrent edit or delete cannot slip
// between the check and the action.
func (s *PostService) Delete(ctx context.Context, writer string, id uint) error {
	deleted, err := s.posts.DeleteOwned(ctx, id, writer)
	if err != nil {
		return err
	}
	if deleted {
		return nil
	}
	return s.classifyMiss(ctx, id)
}

func (s *PostService) classifyMiss(ctx context.Context, id uint) error {
	exists, err := s.posts.Exists(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return models.NewForbiddenError("You can only modify your own posts")
	}
	return models.NewNotFoundError("Post", id)
}
