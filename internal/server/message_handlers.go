package server

import (
	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Timeline handles GET /api/. Authenticated users receive their feed (own
// messages plus followed users', newest first, capped at 100); anonymous
// visitors receive a landing payload.
func (s *Server) Timeline(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == 0 {
		return c.JSON(fiber.Map{
			"messages":      []*models.Message{},
			"authenticated": false,
		})
	}

	messages, err := s.messageService.Timeline(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"messages":      messages,
		"authenticated": true,
	})
}

// CreateMessage handles POST /api/messages/new.
func (s *Server) CreateMessage(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.messageService.Create(c.UserContext(), service.CreateMessageInput{
		UserID: currentUserID(c),
		Text:   req.Text,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetMessage handles GET /api/messages/:id.
func (s *Server) GetMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	message, err := s.messageService.Get(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(message)
}

// DeleteMessage handles POST /api/messages/:id/delete. Only the owner may
// delete a message.
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.messageService.Delete(c.UserContext(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"deleted": id,
	})
}

// ToggleLike handles POST /api/like with body {"msg-id": n}. Response shape
// matches the classic client: {likes, is-liked, msgId, userImg}.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	var req struct {
		MsgID uint `json:"msg-id"`
	}
	if err := c.BodyParser(&req); err != nil || req.MsgID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("msg-id is required"))
	}

	userID := currentUserID(c)
	result, err := s.messageService.ToggleLike(c.UserContext(), userID, req.MsgID)
	if err != nil {
		return respondServiceError(c, err)
	}

	user, err := s.userService.GetUserByID(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"likes":    result.Likes,
		"is-liked": result.IsLiked,
		"msgId":    req.MsgID,
		"userImg":  user.ImageURL,
	})
}

// GetLikedMessages handles GET /api/likes, the current user's liked-messages timeline.
func (s *Server) GetLikedMessages(c *fiber.Ctx) error {
	messages, err := s.messageService.LikedMessages(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"messages": messages,
	})
}
