package repository

import (
	"context"

	"warbler/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines persistence operations for follow edges.
type FollowRepository interface {
	Toggle(ctx context.Context, followerID, followeeID uint) (isFollowing bool, err error)
	Remove(ctx context.Context, followerID, followeeID uint) error
	IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error)
	Following(ctx context.Context, userID uint) ([]models.User, error)
	Followers(ctx context.Context, userID uint) ([]models.User, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Toggle inserts the edge if absent, otherwise removes it, and reports
// whether the follower now follows the followee. The conditional insert
// leans on the composite primary key so a concurrent duplicate insert is
// absorbed instead of failing the request.
func (r *followRepository) Toggle(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var isFollowing bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(
			`INSERT INTO follows (follower_id, followee_id, created_at)
			 VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT (follower_id, followee_id) DO NOTHING`,
			followerID, followeeID,
		)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			isFollowing = true
			return nil
		}

		// Edge already existed: the toggle removes it.
		isFollowing = false
		return tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			Delete(&models.Follow{}).Error
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return isFollowing, nil
}

// Remove deletes the edge if present. Removing an absent edge is a no-op.
func (r *followRepository) Remove(ctx context.Context, followerID, followeeID uint) error {
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Following returns the users the given user follows.
func (r *followRepository) Following(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("id IN (?)",
			r.db.Model(&models.Follow{}).Select("followee_id").Where("follower_id = ?", userID),
		).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// Followers returns the users following the given user.
func (r *followRepository) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("id IN (?)",
			r.db.Model(&models.Follow{}).Select("follower_id").Where("followee_id = ?", userID),
		).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
