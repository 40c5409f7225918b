package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	ServerPort  int

	DatabaseURL string
	JWTSecret   []byte

	KafkaBrokers []string

	LogLevel string

	// CheckoutDecrementsInventory controls whether a successful checkout
	// subtracts the ordered quantities from item stock.
	CheckoutDecrementsInventory bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("notice: .env file not found, using system environment")
	}

	cfg := &Config{
		ServiceName:                 envDefault("SERVICE_NAME", "cart"),
		ServerPort:                  envIntDefault("SERVER_PORT", 8080),
		DatabaseURL:                 must(os.Getenv("DATABASE_URL"), "DATABASE_URL"),
		JWTSecret:                   []byte(must(os.Getenv("JWT_SECRET"), "JWT_SECRET")),
		KafkaBrokers:                csv(os.Getenv("KAFKA_BROKERS")),
		LogLevel:                    envDefault("LOG_LEVEL", "info"),
		CheckoutDecrementsInventory: envBoolDefault("CHECKOUT_DECREMENT_INVENTORY", true),
	}
	return cfg
}

func must(v, name string) string {
	if v == "" {
		log.Fatalf("missing required env %s", name)
	}
	return v
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func csv(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
