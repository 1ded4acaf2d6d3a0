package airalo

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/encryptSIM/backend/internal/config"
)

// Module exposes the fulfillment provider to the fx graph, swapping in the
// mock when provisioning is disabled for the environment.
var Module = fx.Provide(newProvider)

type providerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newProvider(p providerParams) Provider {
	if p.Config.MockProvisioning {
		return NewMockClient()
	}
	return NewClient(p.Config.AiraloBaseURL, p.Config.AiraloClientID, p.Config.AiraloClientKey, p.Logger)
}
