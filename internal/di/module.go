package di

import (
	"go.uber.org/fx"

	"github.com/encryptSIM/backend/internal/adapter/airalo"
	"github.com/encryptSIM/backend/internal/adapter/solana"
	"github.com/encryptSIM/backend/internal/app"
	"github.com/encryptSIM/backend/internal/config"
	"github.com/encryptSIM/backend/internal/logger"
	"github.com/encryptSIM/backend/internal/server/http/handlers"
	"github.com/encryptSIM/backend/internal/server/http/router"
	"github.com/encryptSIM/backend/internal/settlement"
	"github.com/encryptSIM/backend/internal/storage/postgres"
	"github.com/encryptSIM/backend/internal/storage/rediscache"
	"github.com/encryptSIM/backend/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		rediscache.Module,
		solana.Module,
		airalo.Module,
		usecase.Module,
		settlement.Module,
		fx.Provide(
			func(c *solana.Client) settlement.PaymentOracle { return c },
			func(c *solana.Client) usecase.WalletMinter { return c },
			func(p airalo.Provider) settlement.FulfillmentProvider { return p },
			func(s *postgres.Storage) app.ErrorSink { return s },
			func(s *postgres.Storage) app.HealthChecker { return s },
			func(f *app.EsimFacade) handlers.ShopFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
