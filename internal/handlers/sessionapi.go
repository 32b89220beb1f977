package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"

	"marketsim/internal/catalog"
	"marketsim/internal/engines/trading"
	"marketsim/internal/push"
	"marketsim/internal/services"
	"marketsim/internal/session"
	"marketsim/pkg/middleware"
	"marketsim/pkg/response"
)

// SessionHandler is the authenticated human surface: one primary session per
// user, driven by its own clock scheduler.
type SessionHandler struct {
	manager *session.Manager
	catalog *catalog.Catalog
	trader  *trading.Trader
	hub     *push.Hub
	saves   *services.SaveStore
	users   *services.UserStore
}

func NewSessionHandler(manager *session.Manager, cat *catalog.Catalog, trader *trading.Trader, hub *push.Hub, saves *services.SaveStore, users *services.UserStore) *SessionHandler {
	return &SessionHandler{manager: manager, catalog: cat, trader: trader, hub: hub, saves: saves, users: users}
}

type startSessionRequest struct {
	StartingCapital  float64 `json:"starting_capital"`
	RiskLevel        string  `json:"risk_level"`
	Difficulty       string  `json:"difficulty"`
	Mode             string  `json:"mode"`
	Weeks            int     `json:"weeks"`
	CommissionRate   float64 `json:"commission_rate"`
	MarginEnabled    bool    `json:"margin_enabled"`
	MarginMultiplier float64 `json:"margin_multiplier"`
	Seed             int64   `json:"seed"`
}

// Start creates the caller's primary session, replacing any previous one.
func (h *SessionHandler) Start(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cfg := session.Config{
		StartingCapital:  req.StartingCapital,
		RiskLevel:        session.RiskLevel(req.RiskLevel),
		Difficulty:       session.Difficulty(req.Difficulty),
		Mode:             session.Mode(req.Mode),
		Weeks:            req.Weeks,
		CommissionRate:   req.CommissionRate,
		MarginEnabled:    req.MarginEnabled,
		MarginMultiplier: req.MarginMultiplier,
		Seed:             req.Seed,
	}

	s := session.New(middleware.UserID(c), cfg, h.catalog)
	h.manager.Start(s)
	response.Success(c, gin.H{"session_id": s.ID, "config": s.Config, "day": 0})
}

type sessionOrderRequest struct {
	Symbol   string `json:"symbol"`
	Quantity int64  `json:"quantity"`
	Side     string `json:"side"`
}

// PlaceOrder executes an order on the caller's primary session. Unlike the
// bot path, business-rule rejections answer 400 here.
func (h *SessionHandler) PlaceOrder(c *gin.Context) {
	var req sessionOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	s, ok := h.primary(c)
	if !ok {
		return
	}
	if _, known := h.catalog.Lookup(req.Symbol); !known {
		response.NotFound(c, "Unknown symbol")
		return
	}

	trade, err := execute(h.trader, s, req.Side, req.Symbol, req.Quantity)
	if err != nil {
		if tag, ok := trading.Rejection(err); ok {
			c.JSON(400, response.Response{
				Success: false,
				Error:   &response.Error{Code: string(tag), Message: err.Error()},
			})
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	publishOrderUpdate(c, h.hub, s, trade)
	response.OK(c, orderResult{Status: "executed", Trade: &trade})
}

type setSpeedRequest struct {
	Speed float64 `json:"speed"`
}

// SetSpeed changes the simulation speed; values clamp to [0.1, 10].
func (h *SessionHandler) SetSpeed(c *gin.Context) {
	var req setSpeedRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Speed <= 0 {
		response.BadRequest(c, "Speed must be positive")
		return
	}
	s, ok := h.primary(c)
	if !ok {
		return
	}
	s.SetSpeed(req.Speed)
	response.OK(c, gin.H{"speed": req.Speed, "tick_interval_ms": s.TickInterval().Milliseconds()})
}

// Portfolio returns a consistent portfolio snapshot.
func (h *SessionHandler) Portfolio(c *gin.Context) {
	if s, ok := h.primary(c); ok {
		response.OK(c, s.Details())
	}
}

// Stats returns aggregate session performance.
func (h *SessionHandler) Stats(c *gin.Context) {
	if s, ok := h.primary(c); ok {
		response.OK(c, s.SessionStats())
	}
}

// Allocation reports current versus target allocation by instrument type.
func (h *SessionHandler) Allocation(c *gin.Context) {
	if s, ok := h.primary(c); ok {
		response.OK(c, s.Allocation())
	}
}

// MarketData returns the caller's private tape.
func (h *SessionHandler) MarketData(c *gin.Context) {
	s, ok := h.primary(c)
	if !ok {
		return
	}
	if symbol := c.Query("symbol"); symbol != "" {
		q, found := s.Quote(symbol)
		if !found {
			response.NotFound(c, "Unknown symbol")
			return
		}
		response.OK(c, q)
		return
	}
	response.OK(c, gin.H{"quotes": s.Quotes()})
}

type savePresetRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Save snapshots the caller's session into a preset slot under a save code.
func (h *SessionHandler) Save(c *gin.Context) {
	var req savePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" || req.Name == "" {
		response.BadRequest(c, "Save code and preset name are required")
		return
	}
	s, ok := h.primary(c)
	if !ok {
		return
	}

	doc, err := json.Marshal(s.Snapshot())
	if err != nil {
		response.InternalError(c, "Failed to encode snapshot")
		return
	}
	if err := h.saves.PutPreset(req.Code, req.Name, doc); err != nil {
		if errors.Is(err, services.ErrCodeNotFound) {
			response.NotFound(c, "Unknown save code")
			return
		}
		response.InternalError(c, "Failed to store preset")
		return
	}
	response.OK(c, gin.H{"code": req.Code, "name": req.Name})
}

// Load restores the caller's session from a stored preset, replacing the
// current primary session.
func (h *SessionHandler) Load(c *gin.Context) {
	var req savePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" || req.Name == "" {
		response.BadRequest(c, "Save code and preset name are required")
		return
	}

	doc, err := h.saves.GetPreset(req.Code, req.Name)
	switch {
	case errors.Is(err, services.ErrCodeNotFound):
		response.NotFound(c, "Unknown save code")
		return
	case errors.Is(err, services.ErrPresetNotFound):
		response.NotFound(c, "Unknown preset")
		return
	case err != nil:
		response.InternalError(c, "Failed to load preset")
		return
	}

	snap, err := session.DecodeSnapshot(doc)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	s, err := session.RestoreSession(middleware.UserID(c), snap, h.catalog)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	h.manager.Start(s)
	response.OK(c, gin.H{"session_id": s.ID, "day": s.Details().Day})
}

// End stops the caller's session and folds its return into the account's
// play stats.
func (h *SessionHandler) End(c *gin.Context) {
	s, ok := h.primary(c)
	if !ok {
		return
	}

	stats := s.SessionStats()
	h.manager.Stop(s.ID)
	if _, err := h.users.RecordGame(middleware.UserID(c), stats.ReturnPercent); err != nil && !errors.Is(err, services.ErrUserNotFound) {
		response.InternalError(c, "Failed to record game")
		return
	}
	response.OK(c, stats)
}

// primary resolves the caller's primary session, answering 404 when none is
// live.
func (h *SessionHandler) primary(c *gin.Context) (*session.Session, bool) {
	s, ok := h.manager.Registry().Primary(middleware.UserID(c))
	if !ok {
		response.NotFound(c, "No active session")
		return nil, false
	}
	return s, true
}
