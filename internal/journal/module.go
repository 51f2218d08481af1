package journal

import (
	"context"

	"signal_bot/pkg/db"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("journal",
		fx.Provide(
			func(tm *db.PgTxManager) *Repository {
				return New(tm)
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, r *Repository) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return r.EnsureSchema(ctx)
				},
			})
		}),
	)
}
