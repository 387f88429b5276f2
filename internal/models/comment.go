package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxCommentLen bounds the text of a comment.
const MaxCommentLen = 280

// Comment represents a comment on a message. Comments cannot be edited or
// deleted once created.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Text      string         `gorm:"not null" json:"text"`
	UserID    uint           `gorm:"not null" json:"user_id"`
	MessageID uint           `gorm:"not null;index" json:"message_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Message   Message        `gorm:"foreignKey:MessageID" json:"-"`
	CreatedAt time.Time      `json:"timestamp"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
