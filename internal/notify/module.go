package notify

import (
	"context"

	"signal_bot/internal/modules/config"
	"signal_bot/internal/monitor"
	"signal_bot/pkg/logger"

	"go.uber.org/fx"
)

// Module выбирает нотифайер: Telegram при заданном токене, иначе stdout.
func Module() fx.Option {
	return fx.Module("notify",
		fx.Provide(
			func(cfg *config.Config, tracker *monitor.Tracker) Notifier {
				if cfg.Telegram.Token == "" {
					return NewStdout()
				}
				t, err := NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, tracker)
				if err != nil {
					logger.Error("telegram init: %v, falling back to stdout", err)
					return NewStdout()
				}
				return t
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, n Notifier) {
			t, ok := n.(*Telegram)
			if !ok {
				return
			}
			pollCtx, cancel := context.WithCancel(context.Background())
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return t.Start(pollCtx)
				},
				OnStop: func(ctx context.Context) error {
					cancel()
					t.Stop()
					return nil
				},
			})
		}),
	)
}
