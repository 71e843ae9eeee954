package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"zap_store/internal/config"
	"zap_store/internal/queue"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// The notifier tails the order-created topic and logs every new order for
// the shop operator. It runs separately from the API server so a broker
// hiccup never touches request handling.
func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "notifier").Logger()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := queue.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID)
	defer consumer.Close()

	logger.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("consuming order events")
	consumer.Run(ctx)
}
