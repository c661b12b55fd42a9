package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"task-service/internal/api"
	"task-service/internal/config"
	"task-service/internal/events"
	"task-service/internal/repository"
	"task-service/internal/service"
	"task-service/internal/session"
	"task-service/migrations"
	"time"
)

func connectDB(driver, dsn string) (*sql.DB, error) {
	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open(driver, dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Info().Msgf("Connected to %s database", driver)
				return db, nil
			}
		}
		log.Warn().Err(err).Msgf("Retry %d: failed to connect to %s database", i+1, driver)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to %s database after retries: %w", driver, err)
}

func newSessionStore(cfg *config.Config) session.Store {
	if cfg.Session.Store == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
		})
		return session.NewRedisStore(rdb)
	}
	return session.NewMemoryStore()
}

func newPublisher(cfg *config.Config) events.Publisher {
	writer := config.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if writer == nil {
		return events.NopPublisher{}
	}
	return events.NewKafkaPublisher(writer)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	db, err := connectDB(cfg.Database.Driver, cfg.DataSource())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := migrations.AutoMigrate(cfg.Database.Driver, 3, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate tables")
	}

	publisher := newPublisher(cfg)
	if kp, ok := publisher.(*events.KafkaPublisher); ok {
		defer kp.Close()
	}

	store := newSessionStore(cfg)
	codec := session.NewCookieCodec(cfg.Session.Secret, cfg.Session.TTL)

	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	taskService := service.NewTaskService(taskRepo, publisher)
	userService := service.NewUserService(userRepo, sessionRepo, store, publisher)
	sessionService := service.NewSessionService(store, sessionRepo, userService, codec, cfg.Session.TTL, publisher)

	taskHandler := api.NewTaskHandler(taskService)
	userHandler := api.NewUserHandler(userService)
	sessionHandler := api.NewSessionHandler(sessionService, codec, cfg.Session.CookieName, cfg.Session.TTL)

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(cfg.HTTP.RateLimit),
				Burst:     cfg.HTTP.RateBurst,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.RealIP(), nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSOrigins,
		AllowCredentials: true,
	}))
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	api.RegisterRoutes(e, taskHandler, userHandler, sessionHandler)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-done
	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to gracefully shutdown server")
	}
}
