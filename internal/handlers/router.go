package handlers

import (
	"github.com/gin-gonic/gin"

	"marketsim/internal/auth"
	"marketsim/internal/models"
	"marketsim/pkg/middleware"
)

// Handlers bundles every HTTP surface for route registration.
type Handlers struct {
	Auth      *AuthHandler
	Chat      *ChatHandler
	Bot       *BotHandler
	Session   *SessionHandler
	Saves     *SavesHandler
	Health    *HealthHandler
	WebSocket *WebSocketHandler
}

// RegisterRoutes wires the full API onto the router.
func RegisterRoutes(r *gin.Engine, h *Handlers, tokens *auth.Service) {
	r.GET("/health", h.Health.Health)
	r.GET("/ws", middleware.JWTAuth(tokens), h.WebSocket.Handle)

	api := r.Group("/api/v1")
	{
		api.GET("/health", h.Health.Health)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", middleware.OptionalJWTAuth(tokens), h.Auth.Register)
			authGroup.POST("/login", middleware.RateLimit(10, 3), h.Auth.Login)
			authGroup.GET("/profile", middleware.JWTAuth(tokens), h.Auth.Profile)
		}

		chat := api.Group("/chat", middleware.JWTAuth(tokens), middleware.RequireRole(models.RoleTester, models.RoleAdmin))
		{
			chat.GET("/messages", h.Chat.GetMessages)
			chat.POST("/messages", middleware.RateLimit(30, 10), h.Chat.PostMessage)
		}

		bot := api.Group("/bot")
		{
			bot.POST("/register", h.Bot.Register)
			bot.POST("/order", h.Bot.PlaceOrder)
			bot.GET("/:id/stats", h.Bot.Stats)
		}

		api.GET("/market/data", h.Bot.MarketData)
		api.GET("/portfolio", h.Bot.Portfolio)

		saves := api.Group("/saves")
		{
			saves.POST("/create", h.Saves.Create)
			saves.GET("/:code", h.Saves.Get)
			saves.POST("/:code", h.Saves.PutPreset)
			saves.GET("/:code/preset/:name", h.Saves.GetPreset)
			saves.DELETE("/:code/preset/:name", h.Saves.DeletePreset)
		}

		sess := api.Group("/session", middleware.JWTAuth(tokens))
		{
			sess.POST("/start", h.Session.Start)
			sess.POST("/order", h.Session.PlaceOrder)
			sess.POST("/speed", h.Session.SetSpeed)
			sess.GET("/portfolio", h.Session.Portfolio)
			sess.GET("/stats", h.Session.Stats)
			sess.GET("/allocation", h.Session.Allocation)
			sess.GET("/market", h.Session.MarketData)
			sess.POST("/save", h.Session.Save)
			sess.POST("/load", h.Session.Load)
			sess.DELETE("", h.Session.End)
		}
	}
}
