package trader

import (
	"signal_bot/internal/journal"
	bservice "signal_bot/internal/modules/binance_client/service"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/metrics"
	"signal_bot/internal/monitor"
	"signal_bot/internal/notify"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("trader",
		fx.Provide(
			func(
				cfg *config.Config,
				client *bservice.Client,
				tracker *monitor.Tracker,
				repo *journal.Repository,
				notifier notify.Notifier,
				m *metrics.Metrics,
			) *Trader {
				return New(Params{
					Exchange: client,
					Tracker:  tracker,
					Journal:  repo,
					Notifier: notifier,
					Metrics:  m,
					Interval: cfg.CandleInterval,
					Limit:    cfg.CandleLimit,
				})
			},
			func(t *Trader) monitor.Closer { return t },
		),
	)
}
