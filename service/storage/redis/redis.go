package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	redisOnce sync.Once
	mgr       *Manager
)

type Manager struct {
	client *redis.Client
}

// Config for the redis connection backing the online-presence mirror.
type Config struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

// InitRedis initializes the singleton client and pings it once.
func InitRedis(c Config) error {
	var initErr error
	redisOnce.Do(func() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     c.Addr,
			Password: c.Password,
			DB:       c.DB,
			PoolSize: c.PoolSize,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		if err := rdb.Ping(ctx).Err(); err != nil {
			initErr = err
			return
		}
		mgr = &Manager{client: rdb}
	})
	return initErr
}

// Ready reports whether InitRedis succeeded.
func Ready() bool {
	return mgr != nil && mgr.client != nil
}

// GetRedis returns the shared client; call InitRedis first.
func GetRedis() *redis.Client {
	if mgr == nil {
		panic("redis not initialized, call InitRedis first")
	}
	return mgr.client
}

func CloseRedis() error {
	if mgr != nil && mgr.client != nil {
		return mgr.client.Close()
	}
	return nil
}
