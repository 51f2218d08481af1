package metrics

import (
	"signal_bot/internal/monitor"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(New),
		fx.Invoke(func(m *Metrics, tracker *monitor.Tracker) {
			m.RegisterTrackedGauge(tracker.Len)
		}),
	)
}
