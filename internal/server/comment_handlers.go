package server

import (
	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/messages/comments with body {"msgId", "text"}.
// The response is the serialized comment.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		MsgID uint   `json:"msgId"`
		Text  string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil || req.MsgID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("msgId and text are required"))
	}

	comment, err := s.commentService.Create(c.UserContext(), service.CreateCommentInput{
		UserID:    currentUserID(c),
		MessageID: req.MsgID,
		Text:      req.Text,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /api/messages/:id/comments.
func (s *Server) GetComments(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListByMessage(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"comments": comments,
	})
}
