package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"signal_bot/internal/models"

	"github.com/bytedance/sonic"
)

// GetUsdtBalance — запись USDT из фьючерсного аккаунта.
// Подписанный GET; отсутствие USDT в ответе — ErrAccountUnavailable.
func (c *Client) GetUsdtBalance(ctx context.Context, cr models.Credentials) (models.UsdtBalance, error) {
	query := "timestamp=" + strconv.FormatInt(c.now().UnixMilli(), 10)
	signature := sign(cr.APISecret, query)

	endpoint := c.baseURL + "/fapi/v2/account?" + query + "&signature=" + signature

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.UsdtBalance{}, fmt.Errorf("GetUsdtBalance new request: %w", err)
	}
	req.Header.Set("X-MBX-APIKEY", cr.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return models.UsdtBalance{}, fmt.Errorf("GetUsdtBalance do: %w", models.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode/100 != 2 {
		return models.UsdtBalance{}, fmt.Errorf(
			"GetUsdtBalance http %d: %s: %w", resp.StatusCode, string(data), models.ErrUpstreamUnavailable)
	}

	var payload struct {
		Assets []models.UsdtBalance `json:"assets"`
	}
	if err := sonic.Unmarshal(data, &payload); err != nil {
		return models.UsdtBalance{}, fmt.Errorf("GetUsdtBalance decode: %w", err)
	}

	if len(payload.Assets) == 0 {
		return models.UsdtBalance{}, fmt.Errorf("GetUsdtBalance: empty assets: %w", models.ErrAccountUnavailable)
	}

	for _, a := range payload.Assets {
		if a.Asset == "USDT" {
			return a, nil
		}
	}

	return models.UsdtBalance{}, fmt.Errorf("GetUsdtBalance: no USDT entry: %w", models.ErrAccountUnavailable)
}
