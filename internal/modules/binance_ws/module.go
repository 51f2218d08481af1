package binance_ws

import (
	"context"

	"signal_bot/internal/modules/binance_ws/service"
	"signal_bot/internal/modules/config"
	hservice "signal_bot/internal/modules/health/service"

	"go.uber.org/fx"
)

// Module поднимает стример mark-price по вотчлисту.
func Module() fx.Option {
	return fx.Module("binance_ws",
		fx.Provide(
			func(cfg *config.Config) *service.Client {
				return service.NewClient(cfg.BinanceWSBase)
			},
			func(c *service.Client) *service.PriceCache {
				return c.Cache()
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config, c *service.Client, state *hservice.State) {
			streamCtx, cancel := context.WithCancel(context.Background())
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					c.SetConnHook(state.SetWSConnected)
					c.StreamMarkPrices(streamCtx, cfg.WatchSymbols)
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
