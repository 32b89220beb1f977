package handlers

import (
	"github.com/gin-gonic/gin"

	"marketsim/internal/catalog"
	"marketsim/internal/engines/trading"
	"marketsim/internal/push"
	"marketsim/internal/session"
	"marketsim/pkg/response"
)

// BotHandler is the unauthenticated-user surface for trading bots: sessions
// are created with a generated API key and every subsequent call presents it.
type BotHandler struct {
	manager *session.Manager
	catalog *catalog.Catalog
	trader  *trading.Trader
	hub     *push.Hub
}

func NewBotHandler(manager *session.Manager, cat *catalog.Catalog, trader *trading.Trader, hub *push.Hub) *BotHandler {
	return &BotHandler{manager: manager, catalog: cat, trader: trader, hub: hub}
}

type registerBotRequest struct {
	Name string `json:"name"`
}

// Register creates a bot session with the standard funding and returns its
// id and API key. The key is shown once; there is no recovery.
func (h *BotHandler) Register(c *gin.Context) {
	var req registerBotRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		response.BadRequest(c, "Bot name is required")
		return
	}

	s := session.NewBot(req.Name, h.catalog)
	h.manager.Start(s)

	response.Success(c, gin.H{
		"bot_id":           s.ID,
		"api_key":          s.APIKey,
		"starting_capital": s.InitialCapital,
	})
}

type botOrderRequest struct {
	APIKey   string `json:"api_key"`
	Symbol   string `json:"symbol"`
	Quantity int64  `json:"quantity"`
	Side     string `json:"side"` // buy | sell | short | cover
}

// orderResult is the executed/rejected order envelope shared by the bot and
// human order paths.
type orderResult struct {
	Status string         `json:"status"` // executed | rejected
	Trade  *session.Trade `json:"trade,omitempty"`
	Reason *struct {
		Tag     string `json:"tag"`
		Message string `json:"message"`
	} `json:"reason,omitempty"`
}

// PlaceOrder executes an order against the bot's session. Business-rule
// rejections are results, not errors: they answer 200 with status rejected.
func (h *BotHandler) PlaceOrder(c *gin.Context) {
	var req botOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = c.GetHeader("X-API-Key")
	}

	s, ok := h.manager.Registry().FindByAPIKey(apiKey)
	if !ok {
		response.Unauthorized(c, "Unknown bot key")
		return
	}
	if _, known := h.catalog.Lookup(req.Symbol); !known {
		response.NotFound(c, "Unknown symbol")
		return
	}

	trade, err := execute(h.trader, s, req.Side, req.Symbol, req.Quantity)
	if err != nil {
		tag, isRejection := trading.Rejection(err)
		if !isRejection {
			response.BadRequest(c, err.Error())
			return
		}
		if tag == trading.TagValidation {
			response.BadRequest(c, err.Error())
			return
		}
		result := orderResult{Status: "rejected"}
		result.Reason = &struct {
			Tag     string `json:"tag"`
			Message string `json:"message"`
		}{Tag: string(tag), Message: err.Error()}
		response.OK(c, result)
		return
	}

	publishOrderUpdate(c, h.hub, s, trade)
	response.Success(c, orderResult{Status: "executed", Trade: &trade})
}

// Stats returns the bot's aggregate performance.
func (h *BotHandler) Stats(c *gin.Context) {
	s, ok := h.manager.Registry().Get(c.Param("id"))
	if !ok || !s.IsBot {
		response.NotFound(c, "Unknown bot")
		return
	}
	response.OK(c, s.SessionStats())
}

// Portfolio returns positions and unrealized P&L for the bot named by the
// bot_id query parameter.
func (h *BotHandler) Portfolio(c *gin.Context) {
	s, ok := h.manager.Registry().Get(c.Query("bot_id"))
	if !ok {
		response.NotFound(c, "Unknown session")
		return
	}
	response.OK(c, s.Details())
}

// MarketData returns price snapshots from the bot's private tape: one symbol
// with ?symbol=S, the whole board without.
func (h *BotHandler) MarketData(c *gin.Context) {
	s, ok := h.resolveSession(c)
	if !ok {
		response.NotFound(c, "Unknown session")
		return
	}

	if symbol := c.Query("symbol"); symbol != "" {
		q, ok := s.Quote(symbol)
		if !ok {
			response.NotFound(c, "Unknown symbol")
			return
		}
		response.OK(c, q)
		return
	}
	response.OK(c, gin.H{"quotes": s.Quotes(), "day": s.Details().Day})
}

// resolveSession finds the caller's session: bot_id query, then API key.
func (h *BotHandler) resolveSession(c *gin.Context) (*session.Session, bool) {
	if id := c.Query("bot_id"); id != "" {
		return h.manager.Registry().Get(id)
	}
	return h.manager.Registry().FindByAPIKey(c.GetHeader("X-API-Key"))
}

// execute dispatches an order by side.
func execute(trader *trading.Trader, s *session.Session, side, symbol string, qty int64) (session.Trade, error) {
	switch side {
	case "buy":
		return trader.Buy(s, symbol, qty)
	case "sell":
		return trader.Sell(s, symbol, qty)
	case "short":
		return trader.OpenShort(s, symbol, qty)
	case "cover":
		return trader.CloseShort(s, symbol, qty)
	default:
		return session.Trade{}, &trading.TradeError{Tag: trading.TagValidation, Message: "side must be buy, sell, short or cover"}
	}
}

// publishOrderUpdate pushes an order_update frame to the session owner's
// subscribers. Order updates are never coalesced.
func publishOrderUpdate(c *gin.Context, hub *push.Hub, s *session.Session, trade session.Trade) {
	hub.Publish(c.Request.Context(), push.Event{
		Topic: push.TopicOrderUpdate,
		Owner: s.Owner,
		Frame: push.Frame{
			Type: push.FrameOrderUpdate,
			Data: gin.H{"sessionId": s.ID, "trade": trade},
		},
	})
}
