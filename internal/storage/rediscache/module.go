package rediscache

import (
	"context"

	"go.uber.org/fx"

	"github.com/encryptSIM/backend/internal/config"
)

// Module wires the redis cache and its shutdown hook.
var Module = fx.Options(
	fx.Provide(func(cfg *config.Config) *Cache {
		return New(cfg.RedisAddress)
	}),
	fx.Invoke(func(lc fx.Lifecycle, cache *Cache) {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return cache.Close()
			},
		})
	}),
)
