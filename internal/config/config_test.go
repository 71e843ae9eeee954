package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_WHATSAPP_NUMBER", "")
	t.Setenv("ORDER_NUMBER_ATTEMPTS", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreWhatsApp != DefaultStoreWhatsApp {
		t.Fatalf("store number = %q, want default", cfg.StoreWhatsApp)
	}
	if cfg.OrderNumberAttempts != 8 {
		t.Fatalf("attempts = %d, want 8", cfg.OrderNumberAttempts)
	}
	if len(cfg.KafkaBrokers) != 1 || cfg.KafkaBrokers[0] != "localhost:9092" {
		t.Fatalf("brokers = %v", cfg.KafkaBrokers)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_WHATSAPP_NUMBER", "5511888887777")
	t.Setenv("ORDER_NUMBER_ATTEMPTS", "3")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreWhatsApp != "5511888887777" {
		t.Fatalf("store number = %q", cfg.StoreWhatsApp)
	}
	if cfg.OrderNumberAttempts != 3 {
		t.Fatalf("attempts = %d", cfg.OrderNumberAttempts)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "b:9092" {
		t.Fatalf("brokers = %v", cfg.KafkaBrokers)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"ORDER_NUMBER_ATTEMPTS": "zero",
		"ORDER_RATE_LIMIT":      "-1",
		"ORDER_RATE_WINDOW_SEC": "0",
		"REDIS_DB":              "not-a-number",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, val)
			}
		})
	}
}
