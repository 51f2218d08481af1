package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"signal_bot/internal/models"

	"github.com/bytedance/sonic"
)

// GetCandles — закрытые свечи по символу, oldest first.
// Не-2xx ответ — это ErrUpstreamUnavailable, без ретраев.
func (c *Client) GetCandles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error) {
	endpoint := fmt.Sprintf("%s/fapi/v1/klines?symbol=%s&interval=%s&limit=%d",
		c.baseURL, url.QueryEscape(symbol), interval, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("GetCandles new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GetCandles do: %w", models.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("GetCandles http %d: %s: %w", resp.StatusCode, string(data), models.ErrUpstreamUnavailable)
	}

	// формат строки: [openTime, o, h, l, c, vol, closeTime, ...]
	var rows [][]any
	if err := sonic.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("GetCandles decode: %w", err)
	}

	candles := make([]models.Candle, 0, len(rows))
	for _, row := range rows {
		if len(row) < 7 {
			continue
		}
		candle, ok := parseKlineRow(row)
		if !ok {
			continue
		}
		candles = append(candles, candle)
	}

	return candles, nil
}

func parseKlineRow(row []any) (models.Candle, bool) {
	openMs, ok1 := row[0].(float64)
	closeMs, ok2 := row[6].(float64)
	if !ok1 || !ok2 {
		return models.Candle{}, false
	}

	open, err1 := floatField(row[1])
	high, err2 := floatField(row[2])
	low, err3 := floatField(row[3])
	closePx, err4 := floatField(row[4])
	vol, err5 := floatField(row[5])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
		return models.Candle{}, false
	}

	return models.Candle{
		OpenTime:  time.UnixMilli(int64(openMs)),
		Open:      open,
		High:      high,
		Low:       low,
		Close:     closePx,
		Volume:    vol,
		CloseTime: time.UnixMilli(int64(closeMs)),
	}, true
}

func floatField(v any) (float64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected kline field type %T", v)
	}
	return strconv.ParseFloat(s, 64)
}
