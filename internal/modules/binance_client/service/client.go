package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"signal_bot/internal/models"
)

// Client — REST-клиент фьючерсного API Binance. Публичные маркет-данные
// ходят без подписи; приватные вызовы подписываются ключами из Credentials.
type Client struct {
	baseURL string
	http    *http.Client
	now     func() time.Time
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		now:     time.Now,
	}
}

// sign — HMAC-SHA256 hex поверх строки запроса, как того требует биржа.
func sign(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Sign подписывает канонический query ордера секретом аккаунта.
func Sign(c models.Credentials, query string) string {
	return sign(c.APISecret, query)
}
