package server

import (
	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListUsers handles GET /api/users. An optional ?q= filters by username substring.
func (s *Server) ListUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	search := c.Query("q")

	users, err := s.userService.ListUsers(c.UserContext(), search, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"users": users,
	})
}

// GetUserProfile handles GET /api/users/:id, returning the user with their
// most recent messages.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserWithMessages(c.UserContext(), id, 100)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// GetFollowing handles GET /api/users/:id/following.
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	users, err := s.followService.Following(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"following": users,
	})
}

// GetFollowers handles GET /api/users/:id/followers.
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	users, err := s.followService.Followers(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"followers": users,
	})
}

// ToggleFollow handles POST /api/users/follow/:id. Following an already
// followed user unfollows them.
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	followeeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	isFollowing, err := s.followService.Toggle(c.UserContext(), userID, followeeID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"followeeId":  followeeID,
		"isFollowing": isFollowing,
	})
}

// StopFollowing handles POST /api/users/stop-following/:id.
func (s *Server) StopFollowing(c *fiber.Ctx) error {
	followeeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	if err := s.followService.StopFollowing(c.UserContext(), userID, followeeID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"followeeId":  followeeID,
		"isFollowing": false,
	})
}

// UpdateProfile handles POST /api/users/profile. The current password is
// required; only the enumerated fields are updatable.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		Password       string `json:"password"`
		Username       string `json:"username"`
		Email          string `json:"email"`
		Bio            string `json:"bio"`
		Location       string `json:"location"`
		ImageURL       string `json:"image_url"`
		HeaderImageURL string `json:"header_image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Current password is required"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:         currentUserID(c),
		Password:       req.Password,
		Username:       req.Username,
		Email:          req.Email,
		Bio:            req.Bio,
		Location:       req.Location,
		ImageURL:       req.ImageURL,
		HeaderImageURL: req.HeaderImageURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// DeleteAccount handles POST /api/users/delete. The account and everything
// it owns are removed; the session token is revoked.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	userID := currentUserID(c)

	if err := s.userService.DeleteAccount(c.UserContext(), userID); err != nil {
		return respondServiceError(c, err)
	}

	// The account is gone; its token should not outlive it.
	return s.Logout(c)
}
