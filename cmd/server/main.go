package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"visitor-backend/internal/auth"
	"visitor-backend/internal/config"
	"visitor-backend/internal/database"
	"visitor-backend/internal/logging"
	"visitor-backend/internal/notify"
	"visitor-backend/internal/router"
	"visitor-backend/internal/seed"
	"visitor-backend/internal/session"
	"visitor-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	if err := logging.Init(cfg.LogLevel); err != nil {
		log.Fatalf("[FATAL] init logger: %v", err)
	}
	defer logging.Sync()

	for _, w := range cfg.Warnings() {
		logging.Warn(w)
	}

	ctx := context.Background()

	var records store.Store
	if cfg.DatabaseDSN != "" {
		db, err := database.Open(cfg.DatabaseDSN)
		if err != nil {
			logging.Fatal("Database unavailable", zap.Error(err))
		}
		if err := database.Seed(ctx, db, store.SeedSnapshot()); err != nil {
			logging.Fatal("Database seed failed", zap.Error(err))
		}
		records = store.NewGorm(db)
	} else {
		records = store.NewMemory(store.SeedSnapshot())
	}

	var sessions session.Store
	if cfg.RedisAddr != "" {
		client, err := session.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logging.Fatal("Redis unavailable", zap.Error(err))
		}
		defer client.Close()
		sessions = session.NewRedisStore(client, cfg.SessionTTL)
	} else {
		sessions = session.NewMemoryStore()
	}

	var publisher notify.Publisher = notify.Nop{}
	if cfg.AMQPURL != "" {
		p, err := notify.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logging.Fatal("RabbitMQ unavailable", zap.Error(err))
		}
		publisher = p
	}
	defer publisher.Close()

	dir, err := auth.NewDirectory(seed.Accounts(), bcrypt.DefaultCost)
	if err != nil {
		logging.Fatal("Identity directory failed", zap.Error(err))
	}
	logging.Info("Identity directory loaded", zap.Int("accounts", dir.Len()))
	authenticator := auth.NewAuthenticator(dir, sessions, auth.Options{
		Secret:   cfg.JWTSecret,
		TokenTTL: cfg.JWTTTL,
		Delay:    cfg.LoginDelay,
	})

	app := router.New(router.Deps{
		Auth:        authenticator,
		Sessions:    sessions,
		Store:       records,
		Publisher:   publisher,
		CORSOrigins: cfg.AllowedOrigins(),
		VisitWindow: cfg.VisitWindow,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	logging.Info("Server listening", zap.String("port", cfg.HTTPPort))
	if err := serve(app, ":"+cfg.HTTPPort, quit); err != nil {
		logging.Fatal("Server stopped", zap.Error(err))
	}
}

// serve runs app until it fails to serve or a signal arrives on quit,
// in which case it shuts the app down.
func serve(app *fiber.App, addr string, quit <-chan os.Signal) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- app.Listen(addr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-quit:
	}

	logging.Info("Shutting down")
	return app.ShutdownWithTimeout(10 * time.Second)
}
