package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"marketsim/internal/services"
	"marketsim/internal/session"
	"marketsim/pkg/middleware"
	"marketsim/pkg/response"
)

// ChatHandler serves the global room. Route registration gates both
// endpoints to the tester and admin roles.
type ChatHandler struct {
	chat     *services.ChatService
	users    *services.UserStore
	registry *session.Registry
}

func NewChatHandler(chat *services.ChatService, users *services.UserStore, registry *session.Registry) *ChatHandler {
	return &ChatHandler{chat: chat, users: users, registry: registry}
}

// GetMessages returns one page of history, newest first.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	msgs, total, err := h.chat.Messages(page, limit)
	if err != nil {
		response.InternalError(c, "Failed to load messages")
		return
	}
	response.OK(c, gin.H{"messages": msgs, "page": page, "total": total})
}

type postMessageRequest struct {
	Text string `json:"text"`
}

// PostMessage appends a message and broadcasts it to chat subscribers.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.users.FindByID(middleware.UserID(c))
	if errors.Is(err, services.ErrUserNotFound) {
		response.Unauthorized(c, "Unknown account")
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to resolve account")
		return
	}

	// The poster's simulated date is display context; wall time orders the log.
	simTime := time.Time{}
	if s, ok := h.registry.Primary(user.UserID); ok {
		simTime = s.SimDate()
	}

	msg, err := h.chat.Post(c.Request.Context(), user, req.Text, simTime)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, msg)
}
