package redis

import (
	"context"
	"time"

	"booking-portal/config"
	"booking-portal/internal/pkg/log"

	"github.com/redis/go-redis/v9"
)

func SetupClient(cfg *config.RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.GetLogger().Ctx(ctx).Error("error ping redis: " + err.Error())
	}

	return client
}
