package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/repository"
	"warbler/internal/validation"
)

// CommentService provides comment business logic. Comments can be created
// and listed but not edited or deleted.
type CommentService struct {
	commentRepo repository.CommentRepository
	messageRepo repository.MessageRepository
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, messageRepo repository.MessageRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		messageRepo: messageRepo,
	}
}

// CreateCommentInput carries the fields for commenting on a message.
type CreateCommentInput struct {
	UserID    uint
	MessageID uint
	Text      string
}

// Create adds a comment to an existing message.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := validation.ValidateMessageText(in.Text, models.MaxCommentLen); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if _, err := s.messageRepo.GetByID(ctx, in.MessageID, 0); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:      in.Text,
		UserID:    in.UserID,
		MessageID: in.MessageID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListByMessage returns a message's comments, oldest first.
func (s *CommentService) ListByMessage(ctx context.Context, messageID uint) ([]*models.Comment, error) {
	if _, err := s.messageRepo.GetByID(ctx, messageID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByMessage(ctx, messageID)
}
