package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-timetable/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-timetable/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-timetable/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-timetable/internal/config"
	"github.com/comitanigiacomo/kanso-timetable/internal/core/domain"
	"github.com/comitanigiacomo/kanso-timetable/internal/core/services"
	"github.com/comitanigiacomo/kanso-timetable/internal/core/workers"
)

type app struct {
	Router *gin.Engine

	db    *sqlx.DB
	redis *redis.Client
	log   *zap.Logger
}

// buildApp wires storage, caches, services and the router. The stats worker
// runs until ctx is cancelled.
func buildApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	a := &app{log: log}

	var (
		timetableRepo domain.TimetableRepository
		userRepo      domain.UserRepository
	)

	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := sqlx.Connect("pgx", cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
		db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
		a.db = db
		log.Info("database connected", zap.String("host", cfg.DB.Host), zap.String("name", cfg.DB.Name))

		if cfg.DB.AutoMigrate {
			if err := repository.RunMigrations(db.DB, log); err != nil {
				a.Close()
				return nil, err
			}
		}

		timetableRepo = repository.NewPostgresTimetableRepository(db)
		userRepo = repository.NewPostgresUserRepository(db)
	default:
		log.Warn("using in-memory storage, data is lost on restart")
		timetableRepo = repository.NewInMemoryTimetableRepository()
		userRepo = repository.NewInMemoryUserRepository()
	}

	var (
		statsCache domain.StatsCache
		enqueuer   services.StatsEnqueuer
	)

	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedisClient(ctx, cache.RedisOptions{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("redis unavailable, running without cache and rate limiting", zap.Error(err))
		} else {
			a.redis = rdb
			timetableRepo = repository.NewCachedTimetableRepository(timetableRepo, rdb, cfg.Redis.ListTTL, log)
			statsCache = cache.NewRedisStatsCache(rdb, cfg.Redis.StatsTTL)

			worker := workers.NewStatsWorker(timetableRepo, statsCache, cfg.StatsQueueSize, log)
			worker.Start(ctx)
			enqueuer = worker
		}
	}

	timetableService := services.NewTimetableService(timetableRepo, enqueuer, services.TimetableServiceOptions{
		DefaultTimezone: cfg.DefaultTimezone,
		Logger:          log.Named("timetables"),
	})
	statsService := services.NewStatsService(timetableRepo, statsCache, log.Named("stats"))
	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenDuration, userRepo)

	a.Router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:      adapterHTTP.NewAuthHandler(authService, tokenService),
		TimetableHandler: adapterHTTP.NewTimetableHandler(timetableService),
		StatsHandler:     adapterHTTP.NewStatsHandler(statsService),
		TokenValidator:   tokenService,
		Logger:           log,
		RateLimit: adapterHTTP.RateLimitConfig{
			Requests: cfg.RateLimit.Requests,
			Window:   cfg.RateLimit.Window,
		},
		DB:        a.db,
		Redis:     a.redis,
		StartTime: time.Now(),
	})

	return a, nil
}

func (a *app) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("closing redis", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn("closing database", zap.Error(err))
		}
	}
}
