package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/observability"
	"warbler/internal/repository"
)

// FollowService provides follow-edge business logic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Toggle follows the target if not yet followed, otherwise unfollows, and
// reports the resulting state. Self-follow is rejected.
func (s *FollowService) Toggle(ctx context.Context, followerID, followeeID uint) (bool, error) {
	if followerID == followeeID {
		return false, models.NewValidationError("Cannot follow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return false, err
	}

	isFollowing, err := s.followRepo.Toggle(ctx, followerID, followeeID)
	if err != nil {
		return false, err
	}

	if isFollowing {
		observability.FollowTogglesTotal.WithLabelValues("followed").Inc()
	} else {
		observability.FollowTogglesTotal.WithLabelValues("unfollowed").Inc()
	}
	return isFollowing, nil
}

// StopFollowing removes the edge regardless of its current state.
func (s *FollowService) StopFollowing(ctx context.Context, followerID, followeeID uint) error {
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}
	return s.followRepo.Remove(ctx, followerID, followeeID)
}

// IsFollowing reports whether a follows b.
func (s *FollowService) IsFollowing(ctx context.Context, a, b uint) (bool, error) {
	return s.followRepo.IsFollowing(ctx, a, b)
}

// IsFollowedBy reports whether b follows a.
func (s *FollowService) IsFollowedBy(ctx context.Context, a, b uint) (bool, error) {
	return s.followRepo.IsFollowing(ctx, b, a)
}

// Following returns the users the given user follows.
func (s *FollowService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, userID)
}

// Followers returns the users following the given user.
func (s *FollowService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, userID)
}
