package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultTokenWindow = 15 * time.Minute
	DefaultTokenBytes  = 16 // 128 bits
)

type Config struct {
	AppPort string

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string

	// StoreBackend selects the session store: postgres, redis or memory.
	StoreBackend string

	TokenWindow time.Duration
	TokenBytes  int
}

func Load() Config {

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{

		AppPort: getEnv("APP_PORT", "8080"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		StoreBackend: getEnv("STORE_BACKEND", "postgres"),

		TokenWindow: getDuration("TOKEN_WINDOW", DefaultTokenWindow),
		TokenBytes:  getInt("TOKEN_BYTES", DefaultTokenBytes),
	}

	return cfg

}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
