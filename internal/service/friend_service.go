package service

import (
	"context"
	"log/slog"

	"myboard/internal/middleware"
	"myboard/internal/models"
	"myboard/internal/repository"
)

// FriendService manages the directed friend list.
type FriendService struct {
	friends  repository.FriendRepository
	accounts repository.AccountRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(friends repository.FriendRepository, accounts repository.AccountRepository) *FriendService {
	return &FriendService{friends: friends, accounts: accounts}
}

// AddFriend adds friendID to userID's friend list. The edge is directed and
// idempotent. A friend id that resolves to no account is a silent no-op that
// still reports success, as is adding yourself; both are logged server-side.
func (s *FriendService) AddFriend(ctx context.Context, userID, friendID string) error {
	if friendID == "" || friendID == userID {
		middleware.Logger.InfoContext(ctx, "friend add skipped",
			slog.String("userid", userID),
			slog.String("friend_id", friendID))
		return nil
	}

	target, err := s.accounts.GetByUserID(ctx, friendID)
	if err != nil {
		return err
	}
	if target == nil {
		middleware.Logger.InfoContext(ctx, "friend add skipped: no such account",
			slog.String("userid", userID),
			slog.String("friend_id", friendID))
		return nil
	}

	return s.friends.Add(ctx, userID, friendID)
}

// Friends returns the account records on userID's friend list.
func (s *FriendService) Friends(ctx context.Context, userID string) ([]models.Account, error) {
	return s.friends.FriendAccounts(ctx, userID)
}
