package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"warbler/internal/config"
	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMessageRepository is a mock of the MessageRepository interface
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Message, error) {
	args := m.Called(ctx, id, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Message, error) {
	args := m.Called(ctx, userID, limit, offset, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Message), args.Error(1)
}

func (m *MockMessageRepository) Timeline(ctx context.Context, userID uint) ([]*models.Message, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Message), args.Error(1)
}

func (m *MockMessageRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMessageRepository) IsLiked(ctx context.Context, userID, messageID uint) (bool, error) {
	args := m.Called(ctx, userID, messageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMessageRepository) ToggleLike(ctx context.Context, userID, messageID uint) (int64, bool, error) {
	args := m.Called(ctx, userID, messageID)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockMessageRepository) LikedByUser(ctx context.Context, userID uint) ([]*models.Message, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Message), args.Error(1)
}

// authAs simulates an authenticated request by setting the user ID local.
func authAs(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}

func newMessageTestServer(messageRepo *MockMessageRepository, userRepo *MockUserRepository) *Server {
	return &Server{
		config:         &config.Config{JWTSecret: "test_secret"},
		userService:    service.NewUserService(userRepo),
		messageService: service.NewMessageService(messageRepo),
	}
}

func TestTimeline(t *testing.T) {
	t.Run("anonymous visitor gets a landing payload", func(t *testing.T) {
		app := fiber.New()
		s := newMessageTestServer(new(MockMessageRepository), new(MockUserRepository))
		app.Get("/", s.Timeline)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		payload := decodeBody(t, resp)
		assert.Equal(t, false, payload["authenticated"])
		assert.Empty(t, payload["messages"])
	})

	t.Run("authenticated user gets their feed", func(t *testing.T) {
		app := fiber.New()
		messageRepo := new(MockMessageRepository)
		messageRepo.On("Timeline", mock.Anything, uint(1)).Return([]*models.Message{
			{ID: 10, Text: "hello", UserID: 1},
		}, nil)

		s := newMessageTestServer(messageRepo, new(MockUserRepository))
		app.Get("/", authAs(1), s.Timeline)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		payload := decodeBody(t, resp)
		assert.Equal(t, true, payload["authenticated"])
		assert.Len(t, payload["messages"], 1)
		messageRepo.AssertExpectations(t)
	})
}

func TestCreateMessage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		app := fiber.New()
		messageRepo := new(MockMessageRepository)
		messageRepo.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.Message).ID = 10
			}).Return(nil)
		messageRepo.On("GetByID", mock.Anything, uint(10), uint(1)).
			Return(&models.Message{ID: 10, Text: "hello", UserID: 1}, nil)

		s := newMessageTestServer(messageRepo, new(MockUserRepository))
		app.Post("/messages/new", authAs(1), s.CreateMessage)

		resp := postJSON(t, app, "/messages/new", map[string]string{"text": "hello"})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		messageRepo.AssertExpectations(t)
	})

	t.Run("Empty Text", func(t *testing.T) {
		app := fiber.New()
		s := newMessageTestServer(new(MockMessageRepository), new(MockUserRepository))
		app.Post("/messages/new", authAs(1), s.CreateMessage)

		resp := postJSON(t, app, "/messages/new", map[string]string{"text": ""})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteMessage(t *testing.T) {
	t.Run("Owner", func(t *testing.T) {
		app := fiber.New()
		messageRepo := new(MockMessageRepository)
		messageRepo.On("GetByID", mock.Anything, uint(10), uint(0)).
			Return(&models.Message{ID: 10, UserID: 1}, nil)
		messageRepo.On("Delete", mock.Anything, uint(10)).Return(nil)

		s := newMessageTestServer(messageRepo, new(MockUserRepository))
		app.Post("/messages/:id/delete", authAs(1), s.DeleteMessage)

		resp := postJSON(t, app, "/messages/10/delete", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		messageRepo.AssertExpectations(t)
	})

	t.Run("Non-Owner", func(t *testing.T) {
		app := fiber.New()
		messageRepo := new(MockMessageRepository)
		messageRepo.On("GetByID", mock.Anything, uint(10), uint(0)).
			Return(&models.Message{ID: 10, UserID: 1}, nil)

		s := newMessageTestServer(messageRepo, new(MockUserRepository))
		app.Post("/messages/:id/delete", authAs(2), s.DeleteMessage)

		resp := postJSON(t, app, "/messages/10/delete", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		messageRepo.AssertNotCalled(t, "Delete", mock.Anything, uint(10))
	})

	t.Run("Invalid ID", func(t *testing.T) {
		app := fiber.New()
		s := newMessageTestServer(new(MockMessageRepository), new(MockUserRepository))
		app.Post("/messages/:id/delete", authAs(1), s.DeleteMessage)

		resp := postJSON(t, app, "/messages/abc/delete", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestToggleLike(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		app := fiber.New()
		messageRepo := new(MockMessageRepository)
		messageRepo.On("GetByID", mock.Anything, uint(10), uint(0)).
			Return(&models.Message{ID: 10, UserID: 2}, nil)
		messageRepo.On("ToggleLike", mock.Anything, uint(1), uint(10)).
			Return(int64(3), true, nil)

		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(1)).
			Return(&models.User{ID: 1, ImageURL: "/img.png"}, nil)

		s := newMessageTestServer(messageRepo, userRepo)
		app.Post("/like", authAs(1), s.ToggleLike)

		resp := postJSON(t, app, "/like", map[string]uint{"msg-id": 10})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		payload := decodeBody(t, resp)
		assert.EqualValues(t, 3, payload["likes"])
		assert.Equal(t, true, payload["is-liked"])
		assert.EqualValues(t, 10, payload["msgId"])
		assert.Equal(t, "/img.png", payload["userImg"])
		messageRepo.AssertExpectations(t)
	})

	t.Run("Unknown Message", func(t *testing.T) {
		app := fiber.New()
		messageRepo := new(MockMessageRepository)
		messageRepo.On("GetByID", mock.Anything, uint(99), uint(0)).
			Return(nil, models.NewNotFoundError("Message", 99))

		s := newMessageTestServer(messageRepo, new(MockUserRepository))
		app.Post("/like", authAs(1), s.ToggleLike)

		resp := postJSON(t, app, "/like", map[string]uint{"msg-id": 99})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Missing Message ID", func(t *testing.T) {
		app := fiber.New()
		s := newMessageTestServer(new(MockMessageRepository), new(MockUserRepository))
		app.Post("/like", authAs(1), s.ToggleLike)

		resp := postJSON(t, app, "/like", map[string]uint{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
