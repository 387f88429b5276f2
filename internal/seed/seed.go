// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"

	"warbler/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much data a seeding run produces.
type Options struct {
	Users           int
	MessagesPerUser int
	FollowsPerUser  int
	LikesPerUser    int
	// Seed makes runs reproducible when non-zero.
	Seed int64
}

// DefaultOptions returns a small but lively data set.
func DefaultOptions() Options {
	return Options{
		Users:           25,
		MessagesPerUser: 8,
		FollowsPerUser:  5,
		LikesPerUser:    10,
	}
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, seedVal int64) *Factory {
	if seedVal == 0 {
		seedVal = gofakeit.Int64()
	}
	gofakeit.Seed(seedVal)
	return &Factory{db: db, rand: rand.New(rand.NewSource(seedVal))}
}

// CreateUser persists a user with a known password ("password123") so demo
// accounts can be logged into.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:       fmt.Sprintf("%s%d", gofakeit.Username(), f.rand.Intn(10000)),
		Email:          gofakeit.Email(),
		Password:       string(hashed),
		ImageURL:       fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
		HeaderImageURL: models.DefaultHeaderImageURL,
		Bio:            gofakeit.Sentence(8),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// clampRunes trims s to at most max runes. Byte slicing could split a
// multi-byte rune and produce text the validators reject.
func clampRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// CreateMessage persists a short message for the user.
func (f *Factory) CreateMessage(user *models.User) (*models.Message, error) {
	text := clampRunes(gofakeit.Sentence(6+f.rand.Intn(8)), models.MaxMessageLen)

	message := &models.Message{
		Text:   text,
		UserID: user.ID,
	}
	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// Run populates the database with a social mesh of users, messages,
// follows, likes, and comments.
func Run(db *gorm.DB, opts Options) error {
	f := NewFactory(db, opts.Seed)

	users := make([]*models.User, 0, opts.Users)
	messages := make([]*models.Message, 0, opts.Users*opts.MessagesPerUser)

	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)

		for j := 0; j < opts.MessagesPerUser; j++ {
			message, err := f.CreateMessage(user)
			if err != nil {
				return fmt.Errorf("seed message: %w", err)
			}
			messages = append(messages, message)
		}
	}

	for _, user := range users {
		for j := 0; j < opts.FollowsPerUser; j++ {
			target := users[f.rand.Intn(len(users))]
			if target.ID == user.ID {
				continue
			}
			edge := &models.Follow{FollowerID: user.ID, FolloweeID: target.ID}
			if err := f.db.Where(edge).FirstOrCreate(edge).Error; err != nil {
				return fmt.Errorf("seed follow: %w", err)
			}
		}

		for j := 0; j < opts.LikesPerUser && len(messages) > 0; j++ {
			target := messages[f.rand.Intn(len(messages))]
			like := &models.Like{UserID: user.ID, MessageID: target.ID}
			if err := f.db.Where(like).FirstOrCreate(like).Error; err != nil {
				return fmt.Errorf("seed like: %w", err)
			}

			// Occasionally leave a comment on the liked message.
			if f.rand.Intn(3) == 0 {
				comment := &models.Comment{
					Text:      gofakeit.Sentence(5),
					UserID:    user.ID,
					MessageID: target.ID,
				}
				if err := f.db.Create(comment).Error; err != nil {
					return fmt.Errorf("seed comment: %w", err)
				}
			}
		}
	}

	return nil
}
