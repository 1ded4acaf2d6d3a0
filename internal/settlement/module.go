package settlement

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/encryptSIM/backend/internal/domain/repository"
)

// Module provides the settlement coordinator to the fx container.
var Module = fx.Provide(newCoordinator)

type coordinatorParams struct {
	fx.In

	Orders   repository.OrderRepository
	Profiles repository.ProfileRepository
	Oracle   PaymentOracle
	Provider FulfillmentProvider
	Logger   *slog.Logger
}

func newCoordinator(p coordinatorParams) *Coordinator {
	return New(p.Orders, p.Profiles, p.Oracle, p.Provider, p.Logger)
}
