package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/encryptSIM/backend/internal/config"
	"github.com/encryptSIM/backend/internal/domain/repository"
	"github.com/encryptSIM/backend/internal/settlement"
	"github.com/encryptSIM/backend/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewEsimFacade,
		newHTTPServer,
		newWatcher,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type watcherParams struct {
	fx.In

	Coordinator *settlement.Coordinator
	Orders      repository.OrderRepository
	Config      *config.Config
	Logger      *slog.Logger
}

func newWatcher(p watcherParams) *worker.Watcher {
	return worker.NewWatcher(
		p.Coordinator,
		p.Orders,
		p.Config.PollInterval,
		p.Config.MaxWatchDuration,
		p.Config.RecoverWatchers,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Watcher    *worker.Watcher
	Config     *config.Config
	AppCtx     context.Context
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			p.Logger.Info("starting backend", slog.String("addr", p.Server.Addr))
			// Watch loops outlive the start hook, so they run on the
			// application context rather than the hook context.
			p.Watcher.Start(p.AppCtx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Watcher.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("backend stopped")
			return nil
		},
	})
}
