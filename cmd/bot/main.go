package main

import (
	"context"
	"log"

	"signal_bot/internal/journal"
	"signal_bot/internal/modules/api"
	"signal_bot/internal/modules/binance_client"
	"signal_bot/internal/modules/binance_ws"
	"signal_bot/internal/modules/bootstrap"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/health"
	"signal_bot/internal/modules/metrics"
	"signal_bot/internal/modules/postgres"
	"signal_bot/internal/monitor"
	"signal_bot/internal/notify"
	"signal_bot/internal/trader"
	"signal_bot/pkg/logger"
	"signal_bot/pkg/tracing"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

const serviceName = "signal_bot"

func main() {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	logger.SetServiceName(serviceName)
	tracing.SetServiceName(serviceName)

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		postgres.Module(),
		journal.Module(),
		binance_client.Module(),
		binance_ws.Module(),
		bootstrap.Module(),
		monitor.Module(),
		trader.Module(),
		notify.Module(),
		metrics.Module(),
		health.Module(),
		api.Module(),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) {
			var closeTracer func()
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					_, closer, err := tracing.InitTracer(tracing.Config{
						Host: cfg.Jaeger.Host,
						Port: cfg.Jaeger.Port,
					})
					if err != nil {
						return err
					}
					closeTracer = closer
					return nil
				},
				OnStop: func(ctx context.Context) error {
					if closeTracer != nil {
						closeTracer()
					}
					return nil
				},
			})
		}),
	)

	app.Run()
}
