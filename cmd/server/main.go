package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Torqix/aarohan-backend/internal/di"
	"github.com/Torqix/aarohan-backend/internal/events"
	"github.com/Torqix/aarohan-backend/internal/gateway"
	"github.com/Torqix/aarohan-backend/internal/handler"
	"github.com/Torqix/aarohan-backend/pkg/config"
	"github.com/Torqix/aarohan-backend/pkg/database"
	"github.com/Torqix/aarohan-backend/pkg/logger"
	"github.com/Torqix/aarohan-backend/pkg/middleware"
	pkgredis "github.com/Torqix/aarohan-backend/pkg/redis"
	"github.com/Torqix/aarohan-backend/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(&logger.Config{
		Level:       "info",
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
		OutputPath:  "stdout",
	}); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, &telemetry.Config{
		Enabled:       cfg.OTel.Enabled,
		ServiceName:   cfg.OTel.ServiceName,
		CollectorAddr: cfg.OTel.CollectorAddr,
	})
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			logger.Error("tracer shutdown", zap.Error(err))
		}
	}()

	dbCfg := database.DefaultPostgresConfig()
	dbCfg.Host = cfg.Database.Host
	dbCfg.Port = cfg.Database.Port
	dbCfg.User = cfg.Database.User
	dbCfg.Password = cfg.Database.Password
	dbCfg.Database = cfg.Database.DBName
	dbCfg.SSLMode = cfg.Database.SSLMode
	dbCfg.MaxConns = int32(cfg.Database.MaxConns)
	dbCfg.MinConns = int32(cfg.Database.MinConns)
	dbCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	dbCfg.MaxConnIdleTime = cfg.Database.ConnMaxIdleTime

	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := pkgredis.New(ctx, &pkgredis.Config{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	var publisher events.Publisher
	if cfg.Kafka.Enabled {
		kafkaPub, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.ClientID)
		if err != nil {
			logger.Fatal("failed to connect to kafka", zap.Error(err))
		}
		publisher = kafkaPub
	} else {
		publisher = events.NewNoopPublisher()
	}
	defer publisher.Close()

	container := di.NewContainer(&di.ContainerConfig{
		DB:        db,
		Publisher: publisher,
		Gateway:   gateway.NewRazorpayGateway(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret),
	})

	rateLimitCfg := middleware.DefaultRateLimitConfig()
	rateLimitCfg.UseRedis = true
	rateLimitCfg.RedisClient = redisClient
	rateLimiter := middleware.NewRateLimiter(rateLimitCfg)
	defer rateLimiter.Stop()

	router := handler.NewRouter(&handler.RouterConfig{
		Health:       container.HealthHandler,
		Events:       container.EventHandler,
		Registration: container.RegistrationHandler,
		Payments:     container.PaymentHandler,
		CheckIn:      container.CheckInHandler,
		Users:        container.UserHandler,
		JWTSecret:    cfg.JWT.Secret,
		RateLimiter:  rateLimiter,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
