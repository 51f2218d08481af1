package bootstrap

import (
	"context"
	"log"

	bootstrap "signal_bot/internal/modules/bootstrap/service"
	"signal_bot/internal/modules/config"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("bootstrap",
		fx.Provide(
			bootstrap.NewWarmuper,
		),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config, wu *bootstrap.Warmuper) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					go func() {
						if err := wu.Warmup(context.Background(), cfg.WatchSymbols); err != nil {
							log.Printf("[BOOT] warmup error: %v", err)
							return
						}
						log.Printf("[BOOT] warmup done: %d symbols", len(cfg.WatchSymbols))
					}()
					return nil
				},
			})
		}),
	)
}
