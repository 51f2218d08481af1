package service

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"signal_bot/internal/models"

	"github.com/bytedance/sonic"
)

// SubmitTrailingStop подписывает канонический query ордера и отправляет его
// POST-ом. Отклонённый биржей ордер возвращает её сообщение дословно
// внутри TradeExecutionError.
func (c *Client) SubmitTrailingStop(
	ctx context.Context,
	cr models.Credentials,
	order models.OrderRequest,
) (models.OrderResult, error) {

	query := order.Query()
	signature := sign(cr.APISecret, query)

	endpoint := c.baseURL + "/fapi/v1/order?" + query + "&signature=" + signature

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return models.OrderResult{}, fmt.Errorf("SubmitTrailingStop new request: %w", err)
	}
	req.Header.Set("X-MBX-APIKEY", cr.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return models.OrderResult{}, fmt.Errorf("SubmitTrailingStop do: %w", models.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode/100 != 2 {
		var apiErr struct {
			Code int    `json:"code"`
			Msg  string `json:"msg"`
		}
		if err := sonic.Unmarshal(data, &apiErr); err == nil && apiErr.Msg != "" {
			return models.OrderResult{}, models.NewTradeExecutionError("%s", apiErr.Msg)
		}
		return models.OrderResult{}, models.NewTradeExecutionError("http %d: %s", resp.StatusCode, string(data))
	}

	var result models.OrderResult
	if err := sonic.Unmarshal(data, &result); err != nil {
		return models.OrderResult{}, fmt.Errorf("SubmitTrailingStop decode: %w; body=%s", err, string(data))
	}

	return result, nil
}
