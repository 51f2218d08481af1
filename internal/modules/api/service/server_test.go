package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"signal_bot/internal/creds"
	"signal_bot/internal/models"
	"signal_bot/internal/monitor"
	"signal_bot/internal/trader"
	"signal_bot/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeExchange struct {
	candles []models.Candle
	balance models.UsdtBalance
	balErr  error
}

func (f *fakeExchange) GetCandles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error) {
	return f.candles, nil
}

func (f *fakeExchange) GetLastPrice(ctx context.Context, symbol string) (float64, error) {
	return 100, nil
}

func (f *fakeExchange) GetSymbolPrecision(ctx context.Context, symbol string) (models.SymbolPrecision, error) {
	return models.SymbolPrecision{QuantityPrecision: 2, PricePrecision: 2}, nil
}

func (f *fakeExchange) GetUsdtBalance(ctx context.Context, cr models.Credentials) (models.UsdtBalance, error) {
	if f.balErr != nil {
		return models.UsdtBalance{}, f.balErr
	}
	return f.balance, nil
}

func (f *fakeExchange) SubmitTrailingStop(ctx context.Context, cr models.Credentials, order models.OrderRequest) (models.OrderResult, error) {
	return models.OrderResult{OrderID: 1, Symbol: order.Symbol, Status: "NEW"}, nil
}

func flatCandles(n int) []models.Candle {
	candles := make([]models.Candle, n)
	for i := range candles {
		candles[i] = models.Candle{Open: 100, High: 100, Low: 100, Close: 100}
	}
	return candles
}

func newTestServer(ex *fakeExchange) (*Server, *creds.Registry) {
	registry := creds.NewRegistry()
	t := trader.New(trader.Params{
		Exchange: ex,
		Tracker:  monitor.NewTracker(),
		Interval: "15m",
		Limit:    100,
	})
	return NewServer(t, ex, registry, "binancefutures", "15m", 100), registry
}

func doJSON(t *testing.T, h http.Handler, method, target, body string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestTradeDecision_RequiresSymbol(t *testing.T) {
	s, _ := newTestServer(&fakeExchange{})
	rec := doJSON(t, s.Routes(), http.MethodGet, "/api/trade-decision", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTradeDecision_ShortSeriesIsHold(t *testing.T) {
	s, _ := newTestServer(&fakeExchange{candles: flatCandles(10)})
	rec := doJSON(t, s.Routes(), http.MethodGet, "/api/trade-decision?symbol=BTCUSDT", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Hold", resp["decision"])
}

func TestSetAndGetAPIKeys(t *testing.T) {
	s, _ := newTestServer(&fakeExchange{})
	h := s.Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/set-api-keys",
		`{"exchangeType":"binancefutures","apiKey":"k1","apiSecretKey":"s1"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var created map[string]int
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &created))
	assert.GreaterOrEqual(t, created["accountId"], 1000)
	assert.LessOrEqual(t, created["accountId"], 9999)

	rec = doJSON(t, h, http.MethodGet, "/api/get-api-keys/binancefutures", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var keys map[string]string
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &keys))
	assert.Equal(t, "k1", keys["apiKey"])
	assert.Equal(t, "s1", keys["apiSecretKey"])
}

func TestGetAPIKeys_UnknownExchange(t *testing.T) {
	s, _ := newTestServer(&fakeExchange{})
	rec := doJSON(t, s.Routes(), http.MethodGet, "/api/get-api-keys/kraken", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetAPIKeys_RejectsPartialBody(t *testing.T) {
	s, _ := newTestServer(&fakeExchange{})
	rec := doJSON(t, s.Routes(), http.MethodPost, "/api/set-api-keys",
		`{"exchangeType":"binancefutures","apiKey":"k1"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExecuteTrade_WithoutKeysAnywhere(t *testing.T) {
	s, _ := newTestServer(&fakeExchange{candles: flatCandles(10)})
	rec := doJSON(t, s.Routes(), http.MethodPost, "/api/execute-trade",
		`{"symbol":"BTCUSDT"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "API keys are not set", resp["message"])
}

func TestExecuteTrade_FallsBackToRegistry(t *testing.T) {
	s, registry := newTestServer(&fakeExchange{candles: flatCandles(10)})
	registry.Set("binancefutures", models.Credentials{APIKey: "k", APISecret: "s"})

	rec := doJSON(t, s.Routes(), http.MethodPost, "/api/execute-trade",
		`{"symbol":"BTCUSDT"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Hold - no trade", resp["message"])
}

func TestHistoricalData_ReturnsCandles(t *testing.T) {
	s, _ := newTestServer(&fakeExchange{candles: flatCandles(3)})
	rec := doJSON(t, s.Routes(), http.MethodGet, "/api/historical-data/BTCUSDT", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var candles []models.Candle
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &candles))
	assert.Len(t, candles, 3)
	assert.Equal(t, 100.0, candles[0].Close)
}

func TestUsdtBalance_RequiresHeaders(t *testing.T) {
	s, _ := newTestServer(&fakeExchange{})
	rec := doJSON(t, s.Routes(), http.MethodGet, "/api/usdt-balance", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUsdtBalance_ReturnsEntry(t *testing.T) {
	s, _ := newTestServer(&fakeExchange{
		balance: models.UsdtBalance{Asset: "USDT", AvailableBalance: "1000.0", WalletBalance: "1200.0"},
	})
	rec := doJSON(t, s.Routes(), http.MethodGet, "/api/usdt-balance", "", map[string]string{
		"X-API-KEY":        "k",
		"X-API-SECRET-KEY": "s",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var balance models.UsdtBalance
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &balance))
	assert.Equal(t, "USDT", balance.Asset)
	assert.Equal(t, 1000.0, balance.Available())
}

func TestUsdtBalance_AccountUnavailable(t *testing.T) {
	s, _ := newTestServer(&fakeExchange{balErr: models.ErrAccountUnavailable})
	rec := doJSON(t, s.Routes(), http.MethodGet, "/api/usdt-balance", "", map[string]string{
		"X-API-KEY":        "k",
		"X-API-SECRET-KEY": "s",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
