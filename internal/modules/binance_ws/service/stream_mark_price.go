package service

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

// StreamMarkPrices — один WebSocket на весь вотчлист, подписка пачкой.
// Обновления складываются в PriceCache; канал наружу не нужен.
func (c *Client) StreamMarkPrices(ctx context.Context, symbols []string) {
	go func() {
		if len(symbols) == 0 {
			return
		}

		params := make([]string, 0, len(symbols))
		for _, s := range symbols {
			params = append(params, strings.ToLower(s)+"@markPrice")
		}

		for {
			log.Printf("[WS] markPrice connect, %d symbols", len(symbols))
			conn, _, err := c.wsDialer.Dial(c.baseURL, nil)
			if err != nil {
				log.Printf("[WS] markPrice dial error: %v", err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(time.Second):
				}
				continue
			}

			sub := map[string]any{
				"method": "SUBSCRIBE",
				"params": params,
				"id":     1,
			}
			if err := conn.WriteJSON(sub); err != nil {
				log.Printf("[WS] markPrice subscribe error: %v", err)
				_ = conn.Close()
				continue
			}
			c.connHook(true)

			// биржа шлёт ping сама, но отвечать надо — иначе рвёт через 10 минут
			conn.SetPingHandler(func(data string) error {
				return conn.WriteControl(
					websocket.PongMessage,
					[]byte(data),
					time.Now().Add(5*time.Second),
				)
			})

			// следим за отменой контекста: ReadMessage сам её не видит
			done := make(chan struct{})
			go func() {
				select {
				case <-ctx.Done():
					_ = conn.Close()
				case <-done:
				}
			}()

			for {
				_, msg, err := conn.ReadMessage()
				if err != nil {
					log.Printf("[WS] markPrice read error: %v", err)
					c.connHook(false)
					_ = conn.Close()
					break
				}

				var frame struct {
					Event  string `json:"e"`
					Symbol string `json:"s"`
					Price  string `json:"p"`
				}
				if err := sonic.Unmarshal(msg, &frame); err != nil {
					continue
				}
				if frame.Event != "markPriceUpdate" || frame.Symbol == "" {
					continue
				}

				price, err := strconv.ParseFloat(frame.Price, 64)
				if err != nil || price <= 0 {
					continue
				}
				c.cache.Set(frame.Symbol, price)
			}
			close(done)

			select {
			case <-ctx.Done():
				return
			default:
				time.Sleep(time.Second)
			}
		}
	}()
}
