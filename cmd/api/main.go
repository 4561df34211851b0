// @title           Back-office API
// @version         1.0
// @description     Accounts, catalog and stock administration with role-based access and soft delete.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/lucasnoronhagois/e-commerce-sub000/docs"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/api"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/service"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/infrastructure/config"
	mongostore "github.com/lucasnoronhagois/e-commerce-sub000/internal/infrastructure/db/mongo"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/infrastructure/db/postgres"
	redisstore "github.com/lucasnoronhagois/e-commerce-sub000/internal/infrastructure/db/redis"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/infrastructure/http/handlers"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/infrastructure/messaging/rabbitmq"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/infrastructure/queue"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/infrastructure/search/elasticsearch"
	"github.com/lucasnoronhagois/e-commerce-sub000/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional and never overrides variables already set.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Service: "backoffice"})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "backoffice",
	})
	if cfg.Auth.DevSecret {
		log.Warn().Str("env", cfg.Env).Msg("JWT_SECRET not set, using the development secret")
	}

	// --- Postgres ---
	if err := postgres.Migrate(ctx, cfg.Postgres.DSN); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	db, err := postgres.Connect(ctx, postgres.Config{
		DSN:             cfg.Postgres.DSN,
		MaxConns:        cfg.Postgres.MaxConns,
		MinConns:        cfg.Postgres.MinConns,
		MaxConnLifetime: cfg.Postgres.MaxConnLifetime,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()

	// --- Redis ---
	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// --- Mongo ---
	mongoClient, mongoDB, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	if err := mongostore.EnsureIndexes(ctx, mongoDB); err != nil {
		log.Warn().Err(err).Msg("failed to create audit indexes")
	}

	// --- Audit fan-out ---
	auditRepo := mongostore.NewAuditRepository(mongoDB)
	sinks := []ports.AuditSink{auditRepo}
	if cfg.Rabbit.URL != "" {
		pub, err := rabbitmq.Dial(cfg.Rabbit.URL, cfg.Rabbit.Queue)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to rabbitmq")
		}
		defer pub.Close()
		sinks = append(sinks, pub)
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, sinks, logger.For("audit"))
	dispatcher.Start(workerCtx)

	// --- Product search ---
	var index ports.ProductIndex
	if len(cfg.Elastic.Addresses) > 0 {
		es, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create elasticsearch client")
		}
		index = elasticsearch.NewProductIndex(es, cfg.Elastic.Index)
	}

	// --- Services ---
	accountRepo := postgres.NewAccountRepository(db)
	productRepo := postgres.NewProductRepository(db)
	stockRepo := postgres.NewStockRepository(db)

	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	limiter := redisstore.NewLoginLimiter(rdb, cfg.Redis.LoginMaxFailures, cfg.Redis.LoginWindow)

	e := api.NewRouter(api.Dependencies{
		Auth:     service.NewAuthService(accountRepo, tokens, limiter, dispatcher, cfg.Auth.BcryptCost, logger.For("auth")),
		Tokens:   tokens,
		Accounts: service.NewAccountService(accountRepo, dispatcher, cfg.Auth.BcryptCost, logger.For("accounts")),
		Products: service.NewProductService(productRepo, index, dispatcher, logger.For("products")),
		Stock:    service.NewStockService(stockRepo, productRepo, dispatcher, logger.For("stock")),
		Audit:    service.NewAuditService(auditRepo),
		Checks: []handlers.Check{
			handlers.PostgresCheck(db),
			handlers.RedisCheck(rdb),
			handlers.MongoCheck(mongoDB),
		},
		Logger: logger.For("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	dispatcher.Close()
}
