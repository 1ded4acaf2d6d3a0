package solana

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/encryptSIM/backend/internal/config"
)

// Module exposes the payment oracle client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (*Client, error) {
	return NewClient(p.Config.SolanaRPCURL, p.Config.MasterWallet, p.Logger)
}
