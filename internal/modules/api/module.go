package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"signal_bot/internal/creds"
	"signal_bot/internal/modules/api/service"
	bservice "signal_bot/internal/modules/binance_client/service"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/trader"

	"go.uber.org/fx"
)

// Module поднимает публичный HTTP API.
func Module() fx.Option {
	return fx.Module("api",
		fx.Provide(
			creds.NewRegistry,
			func(cfg *config.Config, t *trader.Trader, client *bservice.Client, registry *creds.Registry) *service.Server {
				return service.NewServer(
					t, client, registry,
					cfg.DefaultExchange, cfg.CandleInterval, cfg.CandleLimit,
				)
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config, s *service.Server) {
			addr := fmt.Sprintf("%s:%d", cfg.Service.Host, cfg.Service.PublicPort)
			srv := &http.Server{
				Addr:              addr,
				Handler:           s.Routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					ln, err := net.Listen("tcp", addr)
					if err != nil {
						return err
					}
					go func() { _ = srv.Serve(ln) }()
					return nil
				},
				OnStop: func(ctx context.Context) error {
					return srv.Shutdown(ctx)
				},
			})
		}),
	)
}
