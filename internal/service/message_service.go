package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/observability"
	"warbler/internal/repository"
	"warbler/internal/validation"
)

// MessageService provides message and like business logic.
type MessageService struct {
	messageRepo repository.MessageRepository
}

// NewMessageService returns a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

// CreateMessageInput carries the fields for posting a message.
type CreateMessageInput struct {
	UserID uint
	Text   string
}

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	Likes   int64
	IsLiked bool
}

// Create posts a new message for the user.
func (s *MessageService) Create(ctx context.Context, in CreateMessageInput) (*models.Message, error) {
	if err := validation.ValidateMessageText(in.Text, models.MaxMessageLen); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	message := &models.Message{
		Text:   in.Text,
		UserID: in.UserID,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	observability.MessagesCreatedTotal.Inc()
	return s.messageRepo.GetByID(ctx, message.ID, in.UserID)
}

// Get returns the message with like details computed for the viewing user
// (0 for anonymous).
func (s *MessageService) Get(ctx context.Context, id, currentUserID uint) (*models.Message, error) {
	return s.messageRepo.GetByID(ctx, id, currentUserID)
}

// ListByUser returns a user's messages, newest first.
func (s *MessageService) ListByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Message, error) {
	return s.messageRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
}

// Delete removes the message. Only the owner may delete it.
func (s *MessageService) Delete(ctx context.Context, userID, messageID uint) error {
	message, err := s.messageRepo.GetByID(ctx, messageID, 0)
	if err != nil {
		return err
	}

	if message.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own messages")
	}

	return s.messageRepo.Delete(ctx, messageID)
}

// Timeline returns the user's feed: their own messages and those of everyone
// they follow, newest first, capped at 100.
func (s *MessageService) Timeline(ctx context.Context, userID uint) ([]*models.Message, error) {
	return s.messageRepo.Timeline(ctx, userID)
}

// ToggleLike likes the message if not yet liked, otherwise unlikes it, and
// returns the resulting like count and state.
func (s *MessageService) ToggleLike(ctx context.Context, userID, messageID uint) (*LikeResult, error) {
	// The message must exist before toggling against it.
	if _, err := s.messageRepo.GetByID(ctx, messageID, 0); err != nil {
		return nil, err
	}

	likes, isLiked, err := s.messageRepo.ToggleLike(ctx, userID, messageID)
	if err != nil {
		return nil, err
	}

	if isLiked {
		observability.LikeTogglesTotal.WithLabelValues("liked").Inc()
	} else {
		observability.LikeTogglesTotal.WithLabelValues("unliked").Inc()
	}
	return &LikeResult{Likes: likes, IsLiked: isLiked}, nil
}

// LikedMessages returns the messages the user has liked, newest first.
func (s *MessageService) LikedMessages(ctx context.Context, userID uint) ([]*models.Message, error) {
	return s.messageRepo.LikedByUser(ctx, userID)
}
