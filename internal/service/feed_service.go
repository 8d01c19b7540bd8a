package service

import (
	"context"

	"myboard/internal/models"
	"myboard/internal/repository"
)

// FeedService resolves which posts a viewer may see in their feed.
type FeedService struct {
	posts   repository.PostRepository
	friends repository.FriendRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(posts repository.PostRepository, friends repository.FriendRepository) *FeedService {
	return &FeedService{posts: posts, friends: friends}
}

// VisibleWriters computes the set of writer ids whose posts the viewer may
// see: the viewer plus everyone on the viewer's own friend list. The lookup is
// single-hop and follows edge direction; friends-of-friends are excluded, and
// being on someone else's list grants nothing.
func (s *FeedService) VisibleWriters(ctx context.Context, viewerID string) ([]string, error) {
	friendIDs, err := s.friends.FriendIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return append([]string{viewerID}, friendIDs...), nil
}

// VisiblePosts returns every post whose writer is in the viewer's visible
// writer set, newest first.
func (s *FeedService) VisiblePosts(ctx context.Context, viewerID string) ([]models.Post, error) {
	writers, err := s.VisibleWriters(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.posts.ListByWriters(ctx, writers)
}
