package trader

import (
	"context"
	"os"
	"testing"
	"time"

	"signal_bot/internal/models"
	"signal_bot/internal/monitor"
	"signal_bot/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// fakeExchange отдаёт заготовленные ответы и копит отправленные ордера.
type fakeExchange struct {
	candles   []models.Candle
	lastPrice float64
	prec      models.SymbolPrecision
	balance   models.UsdtBalance

	submitted    []models.OrderRequest
	balanceCalls int
}

func (f *fakeExchange) GetCandles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error) {
	return f.candles, nil
}

func (f *fakeExchange) GetLastPrice(ctx context.Context, symbol string) (float64, error) {
	return f.lastPrice, nil
}

func (f *fakeExchange) GetSymbolPrecision(ctx context.Context, symbol string) (models.SymbolPrecision, error) {
	return f.prec, nil
}

func (f *fakeExchange) GetUsdtBalance(ctx context.Context, cr models.Credentials) (models.UsdtBalance, error) {
	f.balanceCalls++
	return f.balance, nil
}

func (f *fakeExchange) SubmitTrailingStop(ctx context.Context, cr models.Credentials, order models.OrderRequest) (models.OrderResult, error) {
	f.submitted = append(f.submitted, order)
	return models.OrderResult{OrderID: int64(len(f.submitted)), Symbol: order.Symbol, Status: "NEW"}, nil
}

// sellSeries: 100 свечей болтанки 100±1, затем 15 растущих по +5.
// Даёт Sell: стохастик перекуплен и последняя свеча попадает в shootingStar.
func sellSeries() []models.Candle {
	closes := make([]float64, 0, 115)
	for i := 0; i < 100; i++ {
		if i%2 == 0 {
			closes = append(closes, 101)
		} else {
			closes = append(closes, 99)
		}
	}
	last := closes[len(closes)-1]
	for i := 0; i < 15; i++ {
		last += 5
		closes = append(closes, last)
	}

	candles := make([]models.Candle, 0, len(closes))
	prev := closes[0]
	for i, c := range closes {
		open := prev
		if i == 0 {
			open = c - 1
		}
		high, low := open, c
		if c > open {
			high, low = c, open
		}
		candles = append(candles, models.Candle{Open: open, High: high, Low: low, Close: c})
		prev = c
	}
	return candles
}

func flatSeries(n int) []models.Candle {
	candles := make([]models.Candle, n)
	for i := range candles {
		candles[i] = models.Candle{Open: 100, High: 100, Low: 100, Close: 100}
	}
	return candles
}

func newTestTrader(ex *fakeExchange) (*Trader, *monitor.Tracker) {
	tracker := monitor.NewTracker()
	tr := New(Params{
		Exchange: ex,
		Tracker:  tracker,
		Interval: "15m",
		Limit:    100,
	})
	tr.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return tr, tracker
}

func TestExecuteTrade_HoldShortCircuits(t *testing.T) {
	ex := &fakeExchange{candles: flatSeries(10)}
	tr, _ := newTestTrader(ex)

	out, err := tr.ExecuteTrade(context.Background(), models.Credentials{APIKey: "k", APISecret: "s"}, "BTCUSDT")
	require.NoError(t, err)

	assert.Equal(t, models.DecisionHold, out.Decision)
	assert.Equal(t, "Hold - no trade", out.Message)
	assert.Zero(t, ex.balanceCalls)
	assert.Empty(t, ex.submitted)
}

func TestExecuteTrade_InsufficientFunds(t *testing.T) {
	ex := &fakeExchange{
		candles:   sellSeries(),
		lastPrice: 50,
		prec:      models.SymbolPrecision{QuantityPrecision: 2, PricePrecision: 2},
		balance:   models.UsdtBalance{Asset: "USDT", AvailableBalance: "0"},
	}
	tr, tracker := newTestTrader(ex)

	out, err := tr.ExecuteTrade(context.Background(), models.Credentials{APIKey: "k", APISecret: "s"}, "BTCUSDT")
	require.NoError(t, err)

	assert.Equal(t, "Insufficient funds for trading", out.Message)
	assert.Empty(t, ex.submitted)
	assert.Zero(t, tracker.Len())
}

func TestExecuteTrade_PlacesOrderAndTracks(t *testing.T) {
	ex := &fakeExchange{
		candles:   sellSeries(),
		lastPrice: 50,
		prec:      models.SymbolPrecision{QuantityPrecision: 2, PricePrecision: 2},
		balance:   models.UsdtBalance{Asset: "USDT", AvailableBalance: "1000"},
	}
	tr, tracker := newTestTrader(ex)
	cr := models.Credentials{APIKey: "k", APISecret: "s"}

	out, err := tr.ExecuteTrade(context.Background(), cr, "BTCUSDT")
	require.NoError(t, err)
	require.NotNil(t, out.Order)
	assert.Equal(t, models.DecisionSell, out.Decision)

	require.Len(t, ex.submitted, 1)
	order := ex.submitted[0]
	assert.Equal(t, "SELL", order.Side)
	assert.Equal(t, 20.0, order.Quantity)
	assert.Equal(t, 55.0, order.StopPrice)
	assert.Equal(t, 0.1, order.CallbackRate)

	pos, ok := tracker.Get("BTCUSDT")
	require.True(t, ok)
	assert.Equal(t, models.DecisionSell, pos.Decision)
	assert.Equal(t, 20.0, pos.Quantity)
	assert.InDelta(t, 46.5, pos.TakeProfit, 1e-9)
	assert.InDelta(t, 51.0, pos.StopLoss, 1e-9)
	assert.Equal(t, cr, pos.Credentials)
}

func TestExecuteTrade_NewOrderOverwritesTracked(t *testing.T) {
	ex := &fakeExchange{
		candles:   sellSeries(),
		lastPrice: 50,
		prec:      models.SymbolPrecision{QuantityPrecision: 2, PricePrecision: 2},
		balance:   models.UsdtBalance{Asset: "USDT", AvailableBalance: "1000"},
	}
	tr, tracker := newTestTrader(ex)
	tracker.Track(models.TrackedPosition{Symbol: "BTCUSDT", Decision: models.DecisionBuy, Quantity: 1})

	_, err := tr.ExecuteTrade(context.Background(), models.Credentials{APIKey: "k", APISecret: "s"}, "BTCUSDT")
	require.NoError(t, err)

	pos, ok := tracker.Get("BTCUSDT")
	require.True(t, ok)
	assert.Equal(t, models.DecisionSell, pos.Decision)
	assert.Equal(t, 1, tracker.Len())
}

func TestClosePosition_OppositeSideForTrackedQuantity(t *testing.T) {
	ex := &fakeExchange{
		prec: models.SymbolPrecision{QuantityPrecision: 2, PricePrecision: 2},
	}
	tr, _ := newTestTrader(ex)

	pos := models.TrackedPosition{
		Symbol:   "BTCUSDT",
		Decision: models.DecisionBuy,
		Quantity: 2.5,
	}
	err := tr.ClosePosition(context.Background(), pos, 100)
	require.NoError(t, err)

	require.Len(t, ex.submitted, 1)
	order := ex.submitted[0]
	assert.Equal(t, "SELL", order.Side)
	assert.Equal(t, 2.5, order.Quantity)
	assert.Equal(t, 110.0, order.StopPrice)
}
