package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"marketsim/internal/push"
	"marketsim/internal/session"
)

// HealthHandler reports liveness plus a handful of runtime metrics.
type HealthHandler struct {
	db       *gorm.DB
	hub      *push.Hub
	registry *session.Registry
	started  time.Time
}

func NewHealthHandler(db *gorm.DB, hub *push.Hub, registry *session.Registry) *HealthHandler {
	return &HealthHandler{db: db, hub: hub, registry: registry, started: time.Now()}
}

// Health answers 200 as long as the process serves requests; a degraded
// database is reported, not fatal, since the stores fall back in process.
func (h *HealthHandler) Health(c *gin.Context) {
	dbStatus := "memory"
	if h.db != nil {
		dbStatus = "connected"
		if sqlDB, err := h.db.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "degraded"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "marketsim",
		"database": dbStatus,
		"metrics": gin.H{
			"uptime_seconds":  int64(time.Since(h.started).Seconds()),
			"active_sessions": h.registry.Len(),
			"push_clients":    h.hub.ClientCount(),
			"goroutines":      runtime.NumGoroutine(),
		},
	})
}
