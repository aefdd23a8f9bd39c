package app

import (
	"context"
	"time"

	"equipment_availability/availability"
	"equipment_availability/config"
	"equipment_availability/db"
	"equipment_availability/events"
	"equipment_availability/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// 简化别名，便于 handlers 调用
type Ctx = gin.Context
type H = gin.H

// App 聚合各依赖
type App struct {
	Router    *gin.Engine
	DB        *gorm.DB
	RDB       *redis.Client
	Repo      *db.Repo
	Checker   availability.Checker
	Publisher events.Publisher
	Config    config.Config

	tokens *session.TokenStore
}

func (a *App) Tokens() *session.TokenStore { return a.tokens }

func MustNew(cfg config.Config) *App {
	SetupLogger(cfg.LogLevel, cfg.LogPretty)

	// --- DB: Postgres ---
	dbConn, err := db.ConnectDB(cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	repo := db.NewRepo(dbConn)

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis")
	}

	checker, err := availability.New(cfg.Strategy, repo)
	if err != nil {
		log.Fatal().Err(err).Msg("availability")
	}

	// --- RabbitMQ：未配置时不发送告警 ---
	var pub events.Publisher = events.Nop{}
	if cfg.RabbitURL != "" {
		r, err := events.NewRabbit(cfg.RabbitURL, cfg.ShortageQueue)
		if err != nil {
			log.Fatal().Err(err).Msg("rabbitmq")
		}
		pub = r
	}

	// --- Gin ---
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger())
	useCORS(r, cfg.WebOrigin)

	return &App{
		Router: r, DB: dbConn, RDB: rdb, Repo: repo,
		Checker: checker, Publisher: pub, Config: cfg,
		tokens: session.NewTokenStore(rdb, cfg.TokenTTL),
	}
}

func (a *App) Close() {
	a.Publisher.Close()
	_ = a.RDB.Close()
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
