package app

import (
	"context"
	"database/sql"

	"attendance-service/internal/config"
	"attendance-service/internal/db"
	"attendance-service/internal/logger"
	"attendance-service/internal/redis"

	_ "github.com/lib/pq"
)

type Infra struct {
	DB    *db.DB
	Redis *redis.Client
}

// setupInfra opens Postgres unconditionally (the roster reads it even
// when sessions live in Redis) and Redis only when the configured
// store backend needs it.
func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := db.RunKeystoneMigration(ctx, sqlDB); err != nil {
		return nil, err
	}

	logger.Info("database ready", nil)

	infra := &Infra{DB: &db.DB{DB: sqlDB}}

	if cfg.StoreBackend == "redis" {
		redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		infra.Redis = redisClient

		logger.Info("redis ready", nil)
	}

	return infra, nil
}
