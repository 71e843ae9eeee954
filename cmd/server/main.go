package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"zap_store/internal/catalog"
	"zap_store/internal/checkout"
	"zap_store/internal/config"
	"zap_store/internal/model"
	"zap_store/internal/queue"
	"zap_store/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	rd "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "server").Logger()

	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("open db")
	}
	if err := db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Banner{},
		&model.PromotionalPopup{},
	); err != nil {
		logger.Fatal().Err(err).Msg("migrate db")
	}

	rdb := rd.NewClient(&rd.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rdb.Ping(ctx).Err(); err != nil {
		// Rate limiting fails open and the outbox only loses events, so a
		// missing Redis degrades the service instead of stopping it.
		logger.Warn().Err(err).Msg("redis unreachable, throttling and events degraded")
	}

	producer := queue.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	relay := queue.NewRelay(rdb, producer, cfg.OrderEventStream, cfg.OrderEventGroup, cfg.OrderEventConsumer)
	go relay.Run(ctx)

	outbox := queue.NewOutbox(rdb, cfg.OrderEventStream)
	cat := catalog.New(db)
	svc := checkout.NewService(db, cat, outbox, cfg.StoreWhatsApp, cfg.OrderNumberAttempts)

	r := gin.Default()
	router.Setup(r, db, rdb, cat, svc, cfg)

	logger.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logger.Fatal().Err(err).Msg("http server")
	}
}
