package service

import (
	"net/http"

	"signal_bot/internal/creds"
	"signal_bot/internal/trader"
	"signal_bot/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// Server — публичный HTTP-слой поверх трейдера и реестра ключей.
type Server struct {
	trader          *trader.Trader
	exchange        trader.Exchange
	registry        *creds.Registry
	defaultExchange string
	interval        string
	limit           int
}

func NewServer(
	t *trader.Trader,
	exchange trader.Exchange,
	registry *creds.Registry,
	defaultExchange, interval string,
	limit int,
) *Server {
	return &Server{
		trader:          t,
		exchange:        exchange,
		registry:        registry,
		defaultExchange: defaultExchange,
		interval:        interval,
		limit:           limit,
	}
}

// Routes собирает mux публичного порта.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/trade-decision", s.handleTradeDecision)
	mux.HandleFunc("POST /api/execute-trade", s.handleExecuteTrade)
	mux.HandleFunc("POST /api/set-api-keys", s.handleSetAPIKeys)
	mux.HandleFunc("GET /api/get-api-keys/{exchangeType}", s.handleGetAPIKeys)
	mux.HandleFunc("GET /api/historical-data/{pair}", s.handleHistoricalData)
	mux.HandleFunc("GET /api/usdt-balance", s.handleUsdtBalance)

	return traced(mux)
}

// traced открывает span на каждый запрос.
func traced(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		span := opentracing.GlobalTracer().StartSpan(r.Method + " " + r.URL.Path)
		defer span.Finish()

		ext.HTTPMethod.Set(span, r.Method)
		ext.HTTPUrl.Set(span, r.URL.Path)

		ctx := opentracing.ContextWithSpan(r.Context(), span)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		logger.Error("api: marshal response: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(data)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"message": msg})
}

func decodeBody(r *http.Request, v any) error {
	return sonic.ConfigDefault.NewDecoder(r.Body).Decode(v)
}
