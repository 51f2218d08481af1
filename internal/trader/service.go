package trader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"signal_bot/internal/models"
	"signal_bot/internal/monitor"
	"signal_bot/internal/strategy"
	"signal_bot/pkg/logger"
)

// Exchange — всё, что трейдеру нужно от REST-клиента биржи.
type Exchange interface {
	GetCandles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error)
	GetLastPrice(ctx context.Context, symbol string) (float64, error)
	GetSymbolPrecision(ctx context.Context, symbol string) (models.SymbolPrecision, error)
	GetUsdtBalance(ctx context.Context, cr models.Credentials) (models.UsdtBalance, error)
	SubmitTrailingStop(ctx context.Context, cr models.Credentials, order models.OrderRequest) (models.OrderResult, error)
}

// Journal — аудит сделок; запись не должна валить сам трейд.
type Journal interface {
	RecordOrder(ctx context.Context, decision models.Decision, order models.OrderRequest, result models.OrderResult) error
	RecordClose(ctx context.Context, pos models.TrackedPosition, price float64, result models.OrderResult) error
}

// Notifier — уведомления о сделках.
type Notifier interface {
	Sendf(format string, args ...any)
}

// Observer — счётчики для метрик; методы зовутся по факту событий.
type Observer interface {
	DecisionEvaluated(symbol string, decision models.Decision)
	OrderPlaced(symbol, side string)
	PositionClosed(symbol string)
	TradeError(op string)
}

// Params — зависимости трейдера. Journal, Notifier и Metrics опциональны.
type Params struct {
	Exchange Exchange
	Tracker  *monitor.Tracker
	Journal  Journal
	Notifier Notifier
	Metrics  Observer

	Interval string
	Limit    int
}

// Trader гоняет конвейер решения и исполняет сделки.
type Trader struct {
	exchange Exchange
	tracker  *monitor.Tracker
	journal  Journal
	notifier Notifier
	metrics  Observer

	interval string
	limit    int
	now      func() time.Time
}

func New(p Params) *Trader {
	return &Trader{
		exchange: p.Exchange,
		tracker:  p.Tracker,
		journal:  p.Journal,
		notifier: p.Notifier,
		metrics:  p.Metrics,
		interval: p.Interval,
		limit:    p.Limit,
		now:      time.Now,
	}
}

// Outcome — итог попытки сделки. Message заполнен, когда ордер не размещался.
type Outcome struct {
	Decision models.Decision
	Message  string
	Order    *models.OrderResult
}

// GetDecision тянет свечи и прогоняет полный конвейер стратегии.
func (t *Trader) GetDecision(ctx context.Context, symbol string) (models.Decision, strategy.Inputs, error) {
	candles, err := t.exchange.GetCandles(ctx, symbol, t.interval, t.limit)
	if err != nil {
		return models.DecisionHold, strategy.Inputs{}, fmt.Errorf("GetDecision %s: %w", symbol, err)
	}

	decision, inputs := strategy.Evaluate(candles)

	logger.Info("decision %s: %s (pattern=%s stoch=%v ma=%.4f/%.4f/%.4f)",
		symbol, decision, inputs.Pattern, inputs.Stoch, inputs.MA100, inputs.MA50, inputs.MA21)
	if t.metrics != nil {
		t.metrics.DecisionEvaluated(symbol, decision)
	}

	return decision, inputs, nil
}

// ExecuteTrade решает по символу и, если сигнал торговый, размещает
// трейлинг-стоп на весь доступный баланс. Новая позиция затирает
// отслеживаемую по тому же символу.
func (t *Trader) ExecuteTrade(ctx context.Context, cr models.Credentials, symbol string) (Outcome, error) {
	decision, _, err := t.GetDecision(ctx, symbol)
	if err != nil {
		t.observeError("decision")
		return Outcome{}, err
	}

	if decision == models.DecisionHold {
		return Outcome{Decision: decision, Message: "Hold - no trade"}, nil
	}

	balance, err := t.exchange.GetUsdtBalance(ctx, cr)
	if err != nil {
		t.observeError("balance")
		return Outcome{}, fmt.Errorf("ExecuteTrade %s: %w", symbol, err)
	}
	available := balance.Available()
	if available <= 0 {
		return Outcome{Decision: decision, Message: "Insufficient funds for trading"}, nil
	}

	lastPrice, err := t.exchange.GetLastPrice(ctx, symbol)
	if err != nil {
		t.observeError("last_price")
		return Outcome{}, fmt.Errorf("ExecuteTrade %s: %w", symbol, err)
	}

	prec, err := t.exchange.GetSymbolPrecision(ctx, symbol)
	if err != nil {
		t.observeError("precision")
		return Outcome{}, fmt.Errorf("ExecuteTrade %s: %w", symbol, err)
	}

	order, err := BuildTrailingStop(decision, symbol, available/lastPrice, lastPrice, prec, t.now().UnixMilli())
	if err != nil {
		if errors.Is(err, models.ErrInvalidQuantity) {
			return Outcome{Decision: decision, Message: "Insufficient funds for trading"}, nil
		}
		return Outcome{}, fmt.Errorf("ExecuteTrade %s: %w", symbol, err)
	}

	result, err := t.exchange.SubmitTrailingStop(ctx, cr, order)
	if err != nil {
		t.observeError("submit")
		return Outcome{}, fmt.Errorf("ExecuteTrade %s: %w", symbol, err)
	}

	takeProfit, stopLoss := targets(decision, lastPrice)
	t.tracker.Track(models.TrackedPosition{
		Symbol:      symbol,
		Credentials: cr,
		Decision:    decision,
		Quantity:    order.Quantity,
		TakeProfit:  takeProfit,
		StopLoss:    stopLoss,
		OpenedAt:    t.now(),
	})

	logger.Info("order placed %s %s qty=%v stop=%v tp=%.4f sl=%.4f",
		symbol, order.Side, order.Quantity, order.StopPrice, takeProfit, stopLoss)

	if t.journal != nil {
		if err := t.journal.RecordOrder(ctx, decision, order, result); err != nil {
			logger.Error("journal order %s: %v", symbol, err)
		}
	}
	if t.notifier != nil {
		t.notifier.Sendf("📈 %s %s qty=%v entry≈%v tp=%.4f sl=%.4f",
			symbol, order.Side, order.Quantity, lastPrice, takeProfit, stopLoss)
	}
	if t.metrics != nil {
		t.metrics.OrderPlaced(symbol, order.Side)
	}

	return Outcome{Decision: decision, Order: &result}, nil
}

// ClosePosition закрывает отслеживаемую позицию встречным трейлинг-стопом
// на её количество. Вызывается монитором под локом трекера.
func (t *Trader) ClosePosition(ctx context.Context, pos models.TrackedPosition, price float64) error {
	prec, err := t.exchange.GetSymbolPrecision(ctx, pos.Symbol)
	if err != nil {
		t.observeError("precision")
		return fmt.Errorf("ClosePosition %s: %w", pos.Symbol, err)
	}

	order, err := BuildTrailingStop(pos.Decision.Opposite(), pos.Symbol, pos.Quantity, price, prec, t.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("ClosePosition %s: %w", pos.Symbol, err)
	}

	result, err := t.exchange.SubmitTrailingStop(ctx, pos.Credentials, order)
	if err != nil {
		t.observeError("close")
		return fmt.Errorf("ClosePosition %s: %w", pos.Symbol, err)
	}

	logger.Info("position closed %s %s qty=%v price=%v", pos.Symbol, order.Side, order.Quantity, price)

	if t.journal != nil {
		if err := t.journal.RecordClose(ctx, pos, price, result); err != nil {
			logger.Error("journal close %s: %v", pos.Symbol, err)
		}
	}
	if t.notifier != nil {
		t.notifier.Sendf("📉 closed %s %s qty=%v at %v", pos.Symbol, pos.Decision, pos.Quantity, price)
	}
	if t.metrics != nil {
		t.metrics.PositionClosed(pos.Symbol)
	}

	return nil
}

func (t *Trader) observeError(op string) {
	if t.metrics != nil {
		t.metrics.TradeError(op)
	}
}
