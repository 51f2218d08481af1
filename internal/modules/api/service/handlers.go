package service

import (
	"errors"
	"math/rand"
	"net/http"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"
)

func (s *Server) handleTradeDecision(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		writeMessage(w, http.StatusBadRequest, "symbol is required")
		return
	}

	decision, _, err := s.trader.GetDecision(r.Context(), symbol)
	if err != nil {
		logger.Error("api: trade-decision %s: %v", symbol, err)
		writeMessage(w, http.StatusBadGateway, "failed to evaluate decision")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"decision": string(decision)})
}

func (s *Server) handleExecuteTrade(w http.ResponseWriter, r *http.Request) {
	var body struct {
		APIKey       string `json:"apiKey"`
		APISecretKey string `json:"apiSecretKey"`
		Symbol       string `json:"symbol"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Symbol == "" {
		writeMessage(w, http.StatusBadRequest, "symbol is required")
		return
	}

	cr := models.Credentials{APIKey: body.APIKey, APISecret: body.APISecretKey}
	if !cr.Valid() {
		// ключи не пришли в теле — пробуем реестр
		stored, ok := s.registry.Get(s.defaultExchange)
		if !ok || !stored.Valid() {
			writeMessage(w, http.StatusBadRequest, "API keys are not set")
			return
		}
		cr = stored
	}

	outcome, err := s.trader.ExecuteTrade(r.Context(), cr, body.Symbol)
	if err != nil {
		var execErr *models.TradeExecutionError
		if errors.As(err, &execErr) {
			writeMessage(w, http.StatusBadRequest, execErr.Reason)
			return
		}
		logger.Error("api: execute-trade %s: %v", body.Symbol, err)
		writeMessage(w, http.StatusBadGateway, "trade execution failed")
		return
	}

	if outcome.Message != "" {
		writeMessage(w, http.StatusOK, outcome.Message)
		return
	}
	writeJSON(w, http.StatusOK, outcome.Order)
}

func (s *Server) handleSetAPIKeys(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ExchangeType string `json:"exchangeType"`
		APIKey       string `json:"apiKey"`
		APISecretKey string `json:"apiSecretKey"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.ExchangeType == "" || body.APIKey == "" || body.APISecretKey == "" {
		writeMessage(w, http.StatusBadRequest, "exchangeType, apiKey and apiSecretKey are required")
		return
	}

	s.registry.Set(body.ExchangeType, models.Credentials{
		APIKey:    body.APIKey,
		APISecret: body.APISecretKey,
	})

	// идентификатор чисто косметический, как в исходном сервисе
	accountID := rand.Intn(9000) + 1000
	writeJSON(w, http.StatusOK, map[string]any{"accountId": accountID})
}

func (s *Server) handleGetAPIKeys(w http.ResponseWriter, r *http.Request) {
	exchangeType := r.PathValue("exchangeType")

	cr, ok := s.registry.Get(exchangeType)
	if !ok {
		writeMessage(w, http.StatusNotFound, "API keys are not set")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"apiKey":       cr.APIKey,
		"apiSecretKey": cr.APISecret,
	})
}

func (s *Server) handleHistoricalData(w http.ResponseWriter, r *http.Request) {
	pair := r.PathValue("pair")

	candles, err := s.exchange.GetCandles(r.Context(), pair, s.interval, s.limit)
	if err != nil {
		logger.Error("api: historical-data %s: %v", pair, err)
		writeMessage(w, http.StatusBadGateway, "failed to fetch candles")
		return
	}

	writeJSON(w, http.StatusOK, candles)
}

func (s *Server) handleUsdtBalance(w http.ResponseWriter, r *http.Request) {
	cr := models.Credentials{
		APIKey:    r.Header.Get("X-API-KEY"),
		APISecret: r.Header.Get("X-API-SECRET-KEY"),
	}
	if !cr.Valid() {
		writeMessage(w, http.StatusBadRequest, "API keys are required")
		return
	}

	balance, err := s.exchange.GetUsdtBalance(r.Context(), cr)
	if err != nil {
		if errors.Is(err, models.ErrAccountUnavailable) {
			writeMessage(w, http.StatusNotFound, "USDT balance is not available")
			return
		}
		logger.Error("api: usdt-balance: %v", err)
		writeMessage(w, http.StatusBadGateway, "failed to fetch balance")
		return
	}

	writeJSON(w, http.StatusOK, balance)
}
