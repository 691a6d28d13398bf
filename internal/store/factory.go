package store

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"stepResume/internal/config"
)

// Open 按配置选择 blob 存储后端。redis 驱动复用进程内的
// Redis 客户端；memory 仅用于本地调试，进程退出即丢数据。
func Open(cfg *config.Config, redisClient *redis.Client) (Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		db, err := InitDatabase(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
		return NewGormStore(db)
	case "redis":
		return NewRedisStore(redisClient), nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
