package repository

import (
	"testing"
	"time"

	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := testCtx()

	author := createTestUser(t, db, "author")
	commenter := createTestUser(t, db, "commenter")
	message := createTestMessage(t, db, author, "discuss")

	comment := &models.Comment{
		Text:      "first!",
		UserID:    commenter.ID,
		MessageID: message.ID,
	}
	require.NoError(t, repo.Create(ctx, comment))
	require.NotZero(t, comment.ID)

	got, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "first!", got.Text)
	assert.Equal(t, commenter.Username, got.User.Username)

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

func TestCommentRepository_ListByMessage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := testCtx()

	author := createTestUser(t, db, "author")
	message := createTestMessage(t, db, author, "discuss")
	other := createTestMessage(t, db, author, "quiet")

	base := time.Now().Add(-time.Hour)
	for i, text := range []string{"oldest", "middle", "newest"} {
		comment := &models.Comment{Text: text, UserID: author.ID, MessageID: message.ID}
		require.NoError(t, repo.Create(ctx, comment))
		require.NoError(t, db.Model(comment).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	comments, err := repo.ListByMessage(ctx, message.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "oldest", comments[0].Text)
	assert.Equal(t, "newest", comments[2].Text)

	comments, err = repo.ListByMessage(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
