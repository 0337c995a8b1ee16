// Command server runs the stock admin API.
//
// @title                       Stock Admin API
// @version                     1.0
// @description                 Back-office API for administering stock accounts, stocks and items.
// @BasePath                    /
// @securityDefinitions.apikey  SessionCookie
// @in                          cookie
// @name                        session-token-admin
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	_ "github.com/stockpanel/admin-api/docs"
	"github.com/stockpanel/admin-api/internal/api"
	"github.com/stockpanel/admin-api/internal/api/handler"
	"github.com/stockpanel/admin-api/internal/core/ports"
	"github.com/stockpanel/admin-api/internal/core/service"
	mongodb "github.com/stockpanel/admin-api/internal/infrastructure/db/mongo"
	redisdb "github.com/stockpanel/admin-api/internal/infrastructure/db/redis"
	"github.com/stockpanel/admin-api/internal/infrastructure/kafka"
	"github.com/stockpanel/admin-api/internal/infrastructure/notify"
	"github.com/stockpanel/admin-api/internal/infrastructure/panel"
	"github.com/stockpanel/admin-api/internal/infrastructure/queue"
	"github.com/stockpanel/admin-api/internal/infrastructure/security"
	"github.com/stockpanel/admin-api/internal/infrastructure/session"
	"github.com/stockpanel/admin-api/internal/pkg/config"
	"github.com/stockpanel/admin-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "stock-admin-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Persistence ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongodb index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	admins := mongodb.NewAdminRepository(db)
	users := mongodb.NewUserRepository(db)
	accounts := mongodb.NewAccountRepository(db)
	stocks := mongodb.NewStockRepository(db)
	items := mongodb.NewItemRepository(db)

	// --- Audit stream ---
	var publisher ports.AuditPublisher = kafka.NewLogPublisher(logger.Component("audit"))
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.Connect(ctx, kafka.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.AuditTopic}, logger.Component("kafka"))
		if err != nil {
			log.Fatal().Err(err).Msg("kafka connection failed")
		}
		defer producer.Close()
		publisher = producer
	}
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, publisher, logger.Component("dispatcher"))
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	// --- Services ---
	hasher := security.NewBcryptHasher(security.DefaultCost)
	sessions := session.NewCodec(cfg.SessionSecret, cfg.Session.TTL)

	authService := service.NewAuthService(service.AuthDeps{
		Admins:   admins,
		Hasher:   hasher,
		Sessions: sessions,
		Resets:   session.NewResetCodec(cfg.JWTSecret),
		Limiter:  redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window),
		Notifier: notify.NewLogNotifier(cfg.AuthURL, logger.Component("notify")),
		Audit:    dispatcher,
	}, logger.Component("auth"))

	probes := map[string]handler.Probe{
		"mongodb": mongodb.Probe(mongoClient),
		"redis":   redisdb.Probe(rdb),
	}
	if cfg.PanelAPIURL != "" {
		probes["panel_api"] = panel.NewClient(cfg.PanelAPIURL, nil).Ping
	}

	e := api.NewRouter(api.Deps{
		Auth:     authService,
		Admins:   service.NewAdminService(admins, hasher, dispatcher, logger.Component("admins")),
		Users:    service.NewUserService(users, accounts, dispatcher, logger.Component("users")),
		Accounts: service.NewAccountService(accounts, stocks, items, dispatcher, logger.Component("accounts")),
		Stocks:   service.NewStockService(stocks, accounts, items, dispatcher, logger.Component("stocks")),
		Items:    service.NewItemService(items, stocks, dispatcher, logger.Component("items")),
		Stats:    service.NewStatsService(admins, users, accounts, stocks, items),

		Sessions: sessions,
		Cookie: handler.CookieConfig{
			Name:   cfg.Session.CookieName,
			Domain: cfg.Session.CookieDomain,
			Secure: cfg.Session.CookieSecure,
		},
		Probes: probes,

		AllowedOrigins: cfg.AllowedOrigins(),
		Development:    cfg.Development(),
		Logger:         logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}

	stopWorkers()
	dispatcher.Wait()
	log.Info().Msg("stopped")
}
