package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gowheels/gowheels-backend/internal/config"
	"github.com/gowheels/gowheels-backend/internal/database"
	"github.com/gowheels/gowheels-backend/internal/handlers"
	"github.com/gowheels/gowheels-backend/internal/logger"
	"github.com/gowheels/gowheels-backend/internal/middleware"
	"github.com/gowheels/gowheels-backend/internal/services"
	"github.com/gowheels/gowheels-backend/internal/store"
	"github.com/gowheels/gowheels-backend/internal/store/gormstore"
	"github.com/gowheels/gowheels-backend/internal/store/memstore"
	"github.com/gowheels/gowheels-backend/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logger.Setup(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	st, console, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	fare, err := utils.ParseFarePolicy(cfg.FarePolicy)
	if err != nil {
		return err
	}

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run(ctx)

	notifier := services.MultiNotifier{services.NewHubNotifier(hub, st)}

	if cfg.RedisURL != "" {
		rdb, err := services.InitRedis(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		notifier = append(notifier, services.NewRedisNotifier(rdb))
	}

	if cfg.RabbitMQURL != "" {
		conn, err := services.InitRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		defer conn.Close()
		notifier = append(notifier, services.NewRabbitNotifier(conn))
	}

	// Push notifications are optional
	if cfg.FirebaseCreds != "" {
		fcm, err := services.InitFirebase(ctx, cfg.FirebaseCreds)
		if err != nil {
			log.WithError(err).Warn("Firebase initialization failed, push notifications disabled")
		} else {
			notifier = append(notifier, services.NewPushNotifier(fcm, st))
		}
	}

	receipts, err := openReceipts(cfg)
	if err != nil {
		return err
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsConfig))

	handlers.RegisterRoutes(r, handlers.Deps{
		Store:      st,
		JWTSecret:  cfg.JWTSecret,
		Auth:       services.NewAuthService(st, cfg.JWTSecret, cfg.TokenTTL),
		Bookings:   services.NewBookingService(st),
		Drivers:    services.NewDriverService(st, notifier),
		Passengers: services.NewPassengerService(st),
		Trips:      services.NewTripService(st, fare, notifier),
		Payments:   services.NewPaymentService(st, notifier, services.WithReceipts(receipts)),
		Stats:      services.NewStatsService(st, cfg.StatsCacheTTL),
		Console:    console,
		Hub:        hub,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("GoWheels API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore picks the backing store. The query console only runs against
// PostgreSQL.
func openStore(cfg *config.Config) (store.Store, *services.QueryConsole, func(), error) {
	if cfg.DBDriver == "memory" {
		logrus.Warn("Using the in-memory store, data is lost on restart")
		return memstore.New(), services.NewQueryConsole(nil), func() {}, nil
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	gs := gormstore.New(db)
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return gs, services.NewQueryConsole(gs), closeFn, nil
}

// openReceipts stores receipts in S3 when a bucket is configured and on
// local disk otherwise.
func openReceipts(cfg *config.Config) (services.ReceiptStore, error) {
	if cfg.S3Bucket != "" {
		return services.NewS3Receipts(cfg.AWSRegion, cfg.S3Bucket)
	}
	return services.NewLocalReceipts(cfg.ReceiptDir)
}
