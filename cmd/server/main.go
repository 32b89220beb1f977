package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"marketsim/internal/auth"
	"marketsim/internal/catalog"
	"marketsim/internal/config"
	"marketsim/internal/database"
	"marketsim/internal/engines/trading"
	"marketsim/internal/handlers"
	"marketsim/internal/models"
	"marketsim/internal/push"
	"marketsim/internal/services"
	"marketsim/internal/session"
)

const shutdownGrace = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return 1
	}
	setupLogging(cfg)

	// Persistence is optional: a failed open degrades to in-process stores.
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Warn().Err(err).Msg("database unavailable, falling back to in-process stores")
		db = nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := push.NewHub()
	hubDone := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(hubDone)
	}()

	manager := session.NewManager(ctx, hub)
	trader := trading.New()
	cat := catalog.Default()

	users := services.NewUserStore(db)
	if err := users.Seed(cfg.AdminIdentifier, cfg.AdminPassword, models.RoleAdmin); err != nil {
		log.Error().Err(err).Msg("failed to seed admin account")
		return 1
	}
	if err := users.Seed(cfg.TesterIdentifier, cfg.TesterPassword, models.RoleTester); err != nil {
		log.Error().Err(err).Msg("failed to seed tester account")
		return 1
	}
	saves := services.NewSaveStore(db)
	chat := services.NewChatService(db, hub)
	tokens := auth.NewService(cfg.JWTSecret)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), corsMiddleware())

	h := &handlers.Handlers{
		Auth:      handlers.NewAuthHandler(users, tokens, cfg.OpenRegistration),
		Chat:      handlers.NewChatHandler(chat, users, manager.Registry()),
		Bot:       handlers.NewBotHandler(manager, cat, trader, hub),
		Session:   handlers.NewSessionHandler(manager, cat, trader, hub, saves, users),
		Saves:     handlers.NewSavesHandler(saves),
		Health:    handlers.NewHealthHandler(db, hub, manager.Registry()),
		WebSocket: handlers.NewWebSocketHandler(hub, manager.Registry()),
	}
	handlers.RegisterRoutes(r, h, tokens)

	listener, port := bind(cfg.BindPorts)
	if listener == nil {
		log.Error().Strs("ports", cfg.BindPorts).Msg("could not bind any candidate port")
		return 2
	}

	srv := &http.Server{Handler: r}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(listener)
	}()
	log.Info().Str("port", port).Msg("server listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			return 1
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	// Stop intake first, then close push connections and schedulers, waiting
	// up to the grace period for in-flight work.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("forced shutdown")
	}

	manager.Shutdown()
	cancel()
	select {
	case <-hubDone:
	case <-shutdownCtx.Done():
	}

	log.Info().Msg("server stopped")
	return 0
}

// bind tries each candidate port in order and returns the first listener.
func bind(ports []string) (net.Listener, string) {
	for _, port := range ports {
		l, err := net.Listen("tcp", ":"+port)
		if err != nil {
			log.Warn().Str("port", port).Err(err).Msg("bind failed, trying next port")
			continue
		}
		return l, port
	}
	return nil, ""
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
