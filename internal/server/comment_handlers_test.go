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

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByMessage(ctx context.Context, messageID uint) ([]*models.Comment, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func newCommentTestServer(commentRepo *MockCommentRepository, messageRepo *MockMessageRepository) *Server {
	return &Server{
		config:         &config.Config{JWTSecret: "test_secret"},
		commentService: service.NewCommentService(commentRepo, messageRepo),
	}
}

func TestCreateComment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		app := fiber.New()
		messageRepo := new(MockMessageRepository)
		messageRepo.On("GetByID", mock.Anything, uint(10), uint(0)).
			Return(&models.Message{ID: 10}, nil)

		commentRepo := new(MockCommentRepository)
		commentRepo.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.Comment).ID = 5
			}).Return(nil)
		commentRepo.On("GetByID", mock.Anything, uint(5)).
			Return(&models.Comment{ID: 5, Text: "well said", UserID: 1, MessageID: 10}, nil)

		s := newCommentTestServer(commentRepo, messageRepo)
		app.Post("/messages/comments", authAs(1), s.CreateComment)

		resp := postJSON(t, app, "/messages/comments", map[string]any{
			"msgId": 10,
			"text":  "well said",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "well said", decodeBody(t, resp)["text"])
		commentRepo.AssertExpectations(t)
	})

	t.Run("Missing Message ID", func(t *testing.T) {
		app := fiber.New()
		s := newCommentTestServer(new(MockCommentRepository), new(MockMessageRepository))
		app.Post("/messages/comments", authAs(1), s.CreateComment)

		resp := postJSON(t, app, "/messages/comments", map[string]any{"text": "orphan"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unknown Message", func(t *testing.T) {
		app := fiber.New()
		messageRepo := new(MockMessageRepository)
		messageRepo.On("GetByID", mock.Anything, uint(99), uint(0)).
			Return(nil, models.NewNotFoundError("Message", 99))

		s := newCommentTestServer(new(MockCommentRepository), messageRepo)
		app.Post("/messages/comments", authAs(1), s.CreateComment)

		resp := postJSON(t, app, "/messages/comments", map[string]any{
			"msgId": 99,
			"text":  "into the void",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetComments(t *testing.T) {
	app := fiber.New()
	messageRepo := new(MockMessageRepository)
	messageRepo.On("GetByID", mock.Anything, uint(10), uint(0)).
		Return(&models.Message{ID: 10}, nil)

	commentRepo := new(MockCommentRepository)
	commentRepo.On("ListByMessage", mock.Anything, uint(10)).Return([]*models.Comment{
		{ID: 1, Text: "first", MessageID: 10},
		{ID: 2, Text: "second", MessageID: 10},
	}, nil)

	s := newCommentTestServer(commentRepo, messageRepo)
	app.Get("/messages/:id/comments", s.GetComments)

	req := httptest.NewRequest(http.MethodGet, "/messages/10/comments", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody(t, resp)["comments"], 2)
	commentRepo.AssertExpectations(t)
}
