package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"marketsim/internal/models"
	"marketsim/internal/push"
)

const (
	maxChatMessageLen  = 2000
	defaultChatHistory = 50
	maxChatHistory     = 100
	memoryChatRetained = 1000
)

var ErrEmptyMessage = errors.New("message is empty")

// ChatService runs the single global room. Posting persists the message and
// fans it out to every chat subscriber on the push fabric.
type ChatService struct {
	db  *gorm.DB
	hub *push.Hub

	mu      sync.Mutex
	history []models.ChatMessage
}

// NewChatService creates a service backed by db, or by an in-process ring
// when db is nil.
func NewChatService(db *gorm.DB, hub *push.Hub) *ChatService {
	return &ChatService{db: db, hub: hub}
}

// Post validates and stores a message, then broadcasts it. simTime is the
// poster's current simulation date, carried for display only.
func (c *ChatService) Post(ctx context.Context, user *models.User, text string, simTime time.Time) (*models.ChatMessage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(trimmed) > maxChatMessageLen {
		return nil, fmt.Errorf("message exceeds %d characters", maxChatMessageLen)
	}

	msg := models.ChatMessage{
		ID:           uuid.NewString(),
		UserID:       user.UserID,
		DisplayName:  user.DisplayName,
		Text:         trimmed,
		SimTimestamp: simTime,
		CreatedAt:    time.Now().UTC(),
	}

	if c.db != nil {
		if err := c.db.Create(&msg).Error; err != nil {
			return nil, fmt.Errorf("failed to store chat message: %w", err)
		}
	} else {
		c.mu.Lock()
		c.history = append(c.history, msg)
		if len(c.history) > memoryChatRetained {
			c.history = c.history[len(c.history)-memoryChatRetained:]
		}
		c.mu.Unlock()
	}

	if c.hub != nil {
		c.hub.Publish(ctx, push.Event{
			Topic: push.TopicChat,
			Frame: push.Frame{Type: push.FrameChat, Topic: push.TopicChat, Data: msg},
		})
	}

	log.Debug().Str("user_id", user.UserID).Int("len", len(trimmed)).Msg("chat message posted")
	return &msg, nil
}

// Messages returns one page of history, newest first, plus the total message
// count so callers can page. Page numbers start at 1; the limit is clamped to
// [1, 100], defaulting when zero or negative.
func (c *ChatService) Messages(page, limit int) ([]models.ChatMessage, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultChatHistory
	}
	if limit > maxChatHistory {
		limit = maxChatHistory
	}
	offset := (page - 1) * limit

	if c.db != nil {
		var total int64
		if err := c.db.Model(&models.ChatMessage{}).Count(&total).Error; err != nil {
			return nil, 0, fmt.Errorf("failed to count chat history: %w", err)
		}
		var msgs []models.ChatMessage
		if err := c.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&msgs).Error; err != nil {
			return nil, 0, fmt.Errorf("failed to load chat history: %w", err)
		}
		return msgs, total, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.history)
	total := int64(n)
	start := n - offset
	if start <= 0 {
		return nil, total, nil
	}
	if limit > start {
		limit = start
	}
	msgs := make([]models.ChatMessage, 0, limit)
	for i := start - 1; i >= start-limit; i-- {
		msgs = append(msgs, c.history[i])
	}
	return msgs, total, nil
}

