package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a direct chat message between two users
type Message struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	SenderID    uuid.UUID `gorm:"type:varchar(36);not null;index:idx_messages_pair" json:"senderId"`
	RecipientID uuid.UUID `gorm:"type:varchar(36);not null;index:idx_messages_pair" json:"recipientId"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}

func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
