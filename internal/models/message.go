package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxMessageLen bounds the text of a message.
const MaxMessageLen = 140

// Message represents a short post ("warble"). Text is immutable once posted.
type Message struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Text   string `gorm:"type:varchar(140);not null" json:"text"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this message (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"timestamp"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
