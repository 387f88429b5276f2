package seed

import (
	"strings"
	"testing"
	"unicode/utf8"

	"warbler/internal/database"
	"warbler/internal/models"
	"warbler/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestClampRunes(t *testing.T) {
	t.Parallel()

	t.Run("short text is untouched", func(t *testing.T) {
		assert.Equal(t, "hello", clampRunes("hello", 140))
	})

	t.Run("counts runes, not bytes", func(t *testing.T) {
		// 150 two-byte runes; a byte slice at 140 would split one in half.
		long := strings.Repeat("ü", 150)
		got := clampRunes(long, models.MaxMessageLen)

		assert.Equal(t, models.MaxMessageLen, utf8.RuneCountInString(got))
		assert.True(t, utf8.ValidString(got))
		assert.NoError(t, validation.ValidateMessageText(got, models.MaxMessageLen))
	})
}

func TestRun(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: database.NewGormLogger(),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	opts := Options{
		Users:           3,
		MessagesPerUser: 2,
		FollowsPerUser:  1,
		LikesPerUser:    2,
		Seed:            42,
	}
	require.NoError(t, Run(db, opts))

	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	assert.EqualValues(t, opts.Users, userCount)

	var messages []models.Message
	require.NoError(t, db.Find(&messages).Error)
	require.Len(t, messages, opts.Users*opts.MessagesPerUser)
	for _, m := range messages {
		assert.NoError(t, validation.ValidateMessageText(m.Text, models.MaxMessageLen))
	}
}
