package service

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"signal_bot/internal/models"

	"github.com/bytedance/sonic"
)

// GetSymbolPrecision — точности количества и цены инструмента.
// Тянем живой exchangeInfo перед каждым ордером: точности меняются редко,
// но кэша здесь сознательно нет.
func (c *Client) GetSymbolPrecision(ctx context.Context, symbol string) (models.SymbolPrecision, error) {
	endpoint := c.baseURL + "/fapi/v1/exchangeInfo"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.SymbolPrecision{}, fmt.Errorf("GetSymbolPrecision new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.SymbolPrecision{}, fmt.Errorf("GetSymbolPrecision do: %w", models.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode/100 != 2 {
		return models.SymbolPrecision{}, fmt.Errorf(
			"GetSymbolPrecision http %d: %s: %w", resp.StatusCode, string(data), models.ErrUpstreamUnavailable)
	}

	var payload struct {
		Symbols []struct {
			Symbol            string `json:"symbol"`
			QuantityPrecision int    `json:"quantityPrecision"`
			PricePrecision    int    `json:"pricePrecision"`
		} `json:"symbols"`
	}
	if err := sonic.Unmarshal(data, &payload); err != nil {
		return models.SymbolPrecision{}, fmt.Errorf("GetSymbolPrecision decode: %w", err)
	}

	for _, s := range payload.Symbols {
		if s.Symbol == symbol {
			return models.SymbolPrecision{
				QuantityPrecision: s.QuantityPrecision,
				PricePrecision:    s.PricePrecision,
			}, nil
		}
	}

	// инструмент не найден — дефолтная точность, как делал исходный сервис
	return models.SymbolPrecision{QuantityPrecision: 8, PricePrecision: 8}, nil
}
