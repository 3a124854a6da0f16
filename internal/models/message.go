package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	gorm.Model
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"sender_id"`
	Sender     User      `json:"-"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;index" json:"receiver_id"`
	Receiver   User      `json:"-"`
	Content    string    `gorm:"not null" json:"content"`
}

func (message *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	return
}
