package initializers

import (
	"context"
	"time"

	"ai-interviewer-backend/config"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// InitRedis клиент для хранения сессий интервью. nil - сессии хранятся в памяти процесса
func InitRedis(ctx context.Context) redis.UniversalClient {
	if config.Conf.Redis.Addr == "" {
		return nil
	}
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{config.Conf.Redis.Addr},
		Password: config.Conf.Redis.Password,
		DB:       config.Conf.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		panic("Ошибка подключения к Redis: " + err.Error())
	}
	log.WithField("addr", config.Conf.Redis.Addr).Info("Сервис успешно подключен к Redis")
	return client
}
