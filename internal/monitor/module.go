package monitor

import (
	"context"

	bservice "signal_bot/internal/modules/binance_client/service"
	wsservice "signal_bot/internal/modules/binance_ws/service"
	"signal_bot/internal/modules/config"
	hservice "signal_bot/internal/modules/health/service"

	"go.uber.org/fx"
)

// Module поднимает монитор позиций с тикером из конфига.
func Module() fx.Option {
	return fx.Module("monitor",
		fx.Provide(
			NewTracker,
			func(
				cfg *config.Config,
				tracker *Tracker,
				closer Closer,
				cache *wsservice.PriceCache,
				client *bservice.Client,
				state *hservice.State,
			) *Worker {
				return NewWorker(tracker, closer, cache, client, state, cfg.MonitorPeriod)
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, w *Worker) {
			runCtx, cancel := context.WithCancel(context.Background())
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					go w.Run(runCtx)
					return nil
				},
				OnStop: func(ctx context.Context) error {
					cancel()
					return nil
				},
			})
		}),
	)
}
