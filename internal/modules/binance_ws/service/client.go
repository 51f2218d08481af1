package service

import (
	"github.com/gorilla/websocket"
)

// Client — websocket-клиент фьючерсного стрима.
type Client struct {
	wsDialer *websocket.Dialer
	baseURL  string
	cache    *PriceCache
	connHook func(connected bool)
}

func NewClient(baseURL string) *Client {
	return &Client{
		wsDialer: websocket.DefaultDialer,
		baseURL:  baseURL,
		cache:    NewPriceCache(),
		connHook: func(bool) {},
	}
}

// Cache — кэш последних mark-price, который наполняет стрим.
func (c *Client) Cache() *PriceCache {
	return c.cache
}

// SetConnHook — колбэк о состоянии соединения. Ставится до старта стрима.
func (c *Client) SetConnHook(fn func(connected bool)) {
	if fn != nil {
		c.connHook = fn
	}
}
