package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Soulinho/pandawok-project/internal/audit"
	"github.com/Soulinho/pandawok-project/internal/config"
	dbpkg "github.com/Soulinho/pandawok-project/internal/db"
	"github.com/Soulinho/pandawok-project/internal/events"
	"github.com/Soulinho/pandawok-project/internal/locks"
	"github.com/Soulinho/pandawok-project/internal/logger"
	"github.com/Soulinho/pandawok-project/internal/middleware"
	"github.com/Soulinho/pandawok-project/internal/routes"
)

// lease for distributed table locks; longer than any single command
const lockLease = 30 * time.Second

func main() {

	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		logger.ErrorLogger.Fatalf("database: %v", err)
	}

	if cfg.SeedFloorMap {
		if err := dbpkg.SeedFloorPlan(db); err != nil {
			logger.ErrorLogger.Fatalf("seed floor plan: %v", err)
		}
	}

	// ------------------------------
	// Table locks
	// ------------------------------
	var locker locks.Locker = locks.NewLocal(cfg.LockTimeout)
	if cfg.RedisURL != "" {
		if client := locks.NewRedisClient(cfg.RedisURL); client != nil {
			defer client.Close()
			locker = locks.NewRedis(client, cfg.LockTimeout, lockLease)
			logger.InfoLogger.Info("table locks: redis")
		}
	}

	// ------------------------------
	// Table status events
	// ------------------------------
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NATSURL != "" {
		nats, err := events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			logger.ErrorLogger.WithError(err).Error("nats unavailable, table events disabled")
		} else {
			defer nats.Close()
			publisher = nats
		}
	}

	// ------------------------------
	// Booking notifications
	// ------------------------------
	var notifier events.Notifier = events.LogNotifier{}
	if cfg.RabbitMQURL != "" {
		rabbit, err := events.NewRabbitNotifier(cfg.RabbitMQURL)
		if err != nil {
			logger.ErrorLogger.WithError(err).Error("rabbitmq unavailable, notifications go to the log")
		} else {
			defer rabbit.Close()
			notifier = rabbit
		}
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db))
	defer auditDispatcher.Close()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, routes.Infra{
		Locker:   locker,
		Events:   events.NewTableEmitter(publisher),
		Notifier: notifier,
		Audit:    auditDispatcher,
	})

	logger.InfoLogger.Infof("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		logger.ErrorLogger.Fatalf("failed to start server: %v", err)
	}
}
