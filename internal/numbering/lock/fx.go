package lock

import (
	"context"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/khata/internal/config"
	numberingdomain "github.com/smallbiznis/khata/internal/numbering/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type lockerResult struct {
	fx.Out

	Locker numberingdomain.Locker
}

// ProvideLocker returns a Redis-backed locker when REDIS_ADDR is set. Without
// it numbering runs unlocked.
func ProvideLocker(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) lockerResult {
	if cfg.RedisAddr == "" {
		log.Info("numbering lock disabled: no redis address configured")
		return lockerResult{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return lockerResult{Locker: NewLocker(client)}
}

var Module = fx.Module("numbering.lock",
	fx.Provide(ProvideLocker),
)
