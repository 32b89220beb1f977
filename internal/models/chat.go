package models

import "time"

// ChatMessage is one entry in the global room, totally ordered by wall
// timestamp (CreatedAt).
type ChatMessage struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"index;not null"`
	DisplayName  string    `json:"display_name" gorm:"not null"`
	Text         string    `json:"text" gorm:"not null"`
	SimTimestamp time.Time `json:"sim_timestamp"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
