package repository

import (
	"context"
	"errors"

	"warbler/internal/cache"
	"warbler/internal/models"

	"gorm.io/gorm"
)

// TimelineLimit caps how many messages a timeline query returns.
const TimelineLimit = 100

// MessageRepository defines the interface for message data operations
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Message, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Message, error)
	Timeline(ctx context.Context, userID uint) ([]*models.Message, error)
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, messageID uint) (bool, error)
	ToggleLike(ctx context.Context, userID, messageID uint) (likes int64, isLiked bool, err error)
	LikedByUser(ctx context.Context, userID uint) ([]*models.Message, error)
}

// messageRepository implements MessageRepository
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// applyMessageDetails adds subqueries to fetch the like count and liked
// status in a single query.
func (r *messageRepository) applyMessageDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "messages.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.message_id = messages.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM likes WHERE likes.message_id = messages.id AND likes.user_id = ?) as liked",
			currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *messageRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Message, error) {
	var message models.Message
	err := r.applyMessageDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		First(&message, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &message, nil
}

func (r *messageRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.applyMessageDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// Timeline returns the newest messages authored by the user or anyone they
// follow, newest first, capped at TimelineLimit.
func (r *messageRepository) Timeline(ctx context.Context, userID uint) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.applyMessageDetails(r.db.WithContext(ctx), userID).
		Preload("User").
		Where("messages.user_id = ? OR messages.user_id IN (?)",
			userID,
			r.db.Model(&models.Follow{}).Select("followee_id").Where("follower_id = ?", userID),
		).
		Order("created_at DESC").
		Limit(TimelineLimit).
		Find(&messages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// Delete removes the message along with its likes and comments in one
// transaction. Ownership is checked by the service layer.
func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("message_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Message{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateMessage(ctx, id)
	return nil
}

func (r *messageRepository) IsLiked(ctx context.Context, userID, messageID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// ToggleLike inserts the like if absent, otherwise removes it, and returns
// the message's resulting like count and whether the user now likes it.
// The conditional insert leans on the (user_id, message_id) unique index so
// a concurrent duplicate insert is absorbed instead of failing the request.
func (r *messageRepository) ToggleLike(ctx context.Context, userID, messageID uint) (int64, bool, error) {
	var likes int64
	var isLiked bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(
			`INSERT INTO likes (user_id, message_id, created_at)
			 VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT (user_id, message_id) DO NOTHING`,
			userID, messageID,
		)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			isLiked = true
		} else {
			// Already liked: the toggle removes it.
			if err := tx.Where("user_id = ? AND message_id = ?", userID, messageID).
				Delete(&models.Like{}).Error; err != nil {
				return err
			}
			isLiked = false
		}

		return tx.Model(&models.Like{}).
			Where("message_id = ?", messageID).
			Count(&likes).Error
	})
	if err != nil {
		return 0, false, models.NewInternalError(err)
	}

	cache.InvalidateMessage(ctx, messageID)
	return likes, isLiked, nil
}

// LikedByUser returns the messages the user has liked, newest first.
func (r *messageRepository) LikedByUser(ctx context.Context, userID uint) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.applyMessageDetails(r.db.WithContext(ctx), userID).
		Preload("User").
		Where("messages.id IN (?)",
			r.db.Model(&models.Like{}).Select("message_id").Where("user_id = ?", userID),
		).
		Order("created_at DESC").
		Limit(TimelineLimit).
		Find(&messages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}
