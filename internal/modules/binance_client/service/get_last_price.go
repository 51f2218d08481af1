package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"signal_bot/internal/models"

	"github.com/bytedance/sonic"
)

// GetLastPrice — последняя цена символа с тикера.
func (c *Client) GetLastPrice(ctx context.Context, symbol string) (float64, error) {
	endpoint := c.baseURL + "/fapi/v1/ticker/price?symbol=" + url.QueryEscape(symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("GetLastPrice new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("GetLastPrice do: %w", models.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode/100 != 2 {
		return 0, fmt.Errorf("GetLastPrice http %d: %s: %w", resp.StatusCode, string(data), models.ErrUpstreamUnavailable)
	}

	var payload struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := sonic.Unmarshal(data, &payload); err != nil {
		return 0, fmt.Errorf("GetLastPrice decode: %w", err)
	}

	px, err := strconv.ParseFloat(payload.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("GetLastPrice parse %q: %w", payload.Price, err)
	}
	if px <= 0 {
		return 0, fmt.Errorf("GetLastPrice: price <= 0: %.10f", px)
	}

	return px, nil
}
