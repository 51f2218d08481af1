package journal

import (
	"context"
	"time"

	"signal_bot/internal/models"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// TxManager — транзакционный раннер из pkg/db.
type TxManager interface {
	RunMaster(ctx context.Context, fn func(ctxTx context.Context, tx pgx.Tx) error) error
}

// Repository — append-only журнал сделок. Это аудит, а не state:
// позиции из него после рестарта не восстанавливаются.
type Repository struct {
	tm TxManager
}

func New(tm TxManager) *Repository {
	return &Repository{tm: tm}
}

const schema = `
CREATE TABLE IF NOT EXISTS trade_journal (
    id          BIGSERIAL PRIMARY KEY,
    happened_at TIMESTAMPTZ NOT NULL,
    symbol      TEXT        NOT NULL,
    event       TEXT        NOT NULL,
    side        TEXT        NOT NULL,
    quantity    DOUBLE PRECISION NOT NULL,
    price       DOUBLE PRECISION NOT NULL,
    payload     JSONB
)`

const insertEntry = `
INSERT INTO trade_journal (happened_at, symbol, event, side, quantity, price, payload)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// EnsureSchema создаёт таблицу журнала. Зовётся один раз на старте.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	return r.tm.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, schema)
		return errors.Wrap(err, "Journal.EnsureSchema")
	})
}

func (r *Repository) RecordOrder(
	ctx context.Context,
	decision models.Decision,
	order models.OrderRequest,
	result models.OrderResult,
) error {
	payload, err := sonic.Marshal(result)
	if err != nil {
		return errors.Wrap(err, "Journal.RecordOrder: marshal")
	}

	return r.tm.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, insertEntry,
			time.Now(), order.Symbol, "order", order.Side, order.Quantity, order.StopPrice, payload)
		return errors.Wrap(err, "Journal.RecordOrder")
	})
}

func (r *Repository) RecordClose(
	ctx context.Context,
	pos models.TrackedPosition,
	price float64,
	result models.OrderResult,
) error {
	payload, err := sonic.Marshal(result)
	if err != nil {
		return errors.Wrap(err, "Journal.RecordClose: marshal")
	}

	return r.tm.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, insertEntry,
			time.Now(), pos.Symbol, "close", pos.Decision.Opposite().Side(), pos.Quantity, price, payload)
		return errors.Wrap(err, "Journal.RecordClose")
	})
}
