package binance_client

import (
	"signal_bot/internal/modules/binance_client/service"
	"signal_bot/internal/modules/config"

	"go.uber.org/fx"
)

// Module поднимает REST-клиент биржи.
func Module() fx.Option {
	return fx.Module("binance_client",
		fx.Provide(
			func(cfg *config.Config) *service.Client {
				return service.NewClient(cfg.BinanceRESTBase)
			},
		),
	)
}
