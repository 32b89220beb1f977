package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"marketsim/internal/push"
	"marketsim/internal/session"
	"marketsim/pkg/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development
		return true
	},
}

// WebSocketHandler upgrades authenticated clients onto the push fabric.
// Runs behind JWTAuth; browsers pass the token as a query parameter.
type WebSocketHandler struct {
	hub      *push.Hub
	registry *session.Registry
}

func NewWebSocketHandler(hub *push.Hub, registry *session.Registry) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, registry: registry}
}

// Handle performs the upgrade, attaches the connection and reads client
// frames until the socket closes.
func (h *WebSocketHandler) Handle(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	owner := middleware.UserID(c)
	conn := push.NewConn(ws, owner, string(middleware.Role(c)), 0)
	h.hub.Attach(conn)

	h.readPump(ws, conn, owner)
}

func (h *WebSocketHandler) readPump(ws *websocket.Conn, conn *push.Conn, owner string) {
	defer conn.CloseWithReason(push.CloseClientGone)

	ws.SetReadLimit(4096)
	for {
		var frame push.Frame
		if err := ws.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Str("conn", conn.ID).Err(err).Msg("websocket read error")
			}
			return
		}

		switch frame.Type {
		case push.FrameSubscribe:
			if !conn.Subscribe(frame.Topic) {
				conn.Send(push.Frame{Type: push.FrameError, Data: push.ErrorData{
					Code:    "SUBSCRIBE_DENIED",
					Message: "unknown topic or role not permitted",
				}})
				continue
			}
			if frame.Topic == push.TopicMarketData {
				h.sendSnapshot(conn, owner)
			}
		case push.FrameUnsubscribe:
			conn.Unsubscribe(frame.Topic)
		case push.FramePing:
			conn.Send(push.Frame{Type: push.FramePong})
		default:
			conn.Send(push.Frame{Type: push.FrameError, Data: push.ErrorData{
				Code:    "UNKNOWN_FRAME",
				Message: "unsupported frame type",
			}})
		}
	}
}

// sendSnapshot delivers the full board once so a fresh subscriber has a
// baseline before deltas arrive.
func (h *WebSocketHandler) sendSnapshot(conn *push.Conn, owner string) {
	s, ok := h.registry.Primary(owner)
	if !ok {
		return
	}
	conn.Send(push.Frame{
		Type:  push.FrameMarketSnapshot,
		Topic: push.TopicMarketData,
		Data: gin.H{
			"sessionId":     s.ID,
			"quotes":        s.Quotes(),
			"simulatedTime": s.SimDate(),
		},
	})
}
