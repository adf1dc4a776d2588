package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/organiz-api/internal/config"
	"github.com/yukikurage/organiz-api/internal/database"
	"github.com/yukikurage/organiz-api/internal/logging"
	"github.com/yukikurage/organiz-api/internal/middleware"
	"github.com/yukikurage/organiz-api/internal/server"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	log := logging.New(cfg.LogLevel, os.Stdout)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Connect to database
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(db, log); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	// Sessions and revoked tokens live in Redis when it is configured
	var rdb *redis.Client
	var store sessions.Store
	if addr := cfg.RedisAddr(); addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cfg.Redis.Password,
		})
		defer rdb.Close()

		store, err = redisStore.NewStore(
			10,    // Redis pool size
			"tcp", // network type
			addr,
			"", // username (empty for default user)
			cfg.Redis.Password,
			[]byte(cfg.Auth.SessionSecret),
		)
		if err != nil {
			log.WithError(err).Fatal("Failed to create Redis session store")
		}
	} else {
		log.Warn("REDIS_HOST not set, using cookie sessions and in-memory token revocation")
		store = cookie.NewStore([]byte(cfg.Auth.SessionSecret))
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.Auth.TokenTTL / time.Second),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	router, err := server.NewRouter(server.Options{
		Services:       server.NewServices(db, cfg.Auth, rdb, log),
		SessionStore:   store,
		Metrics:        middleware.NewMetrics(),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AuthRateLimit:  cfg.Server.AuthRateLimit,
		Log:            log,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to build router")
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
