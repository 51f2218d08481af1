package models

import (
	"fmt"
	"strconv"
	"strings"
)

const OrderTypeTrailingStopMarket = "TRAILING_STOP_MARKET"

// OrderRequest — параметры TRAILING_STOP_MARKET ордера в том порядке,
// в котором они попадают в подписываемую строку запроса.
type OrderRequest struct {
	Symbol       string
	Side         string // BUY/SELL
	Quantity     float64
	QuantityPrec int
	CallbackRate float64
	StopPrice    float64
	PricePrec    int
	Timestamp    int64
}

// Query serializes the request as key=value pairs joined with "&".
// The exact byte sequence is what gets signed, so the field order is fixed.
func (o OrderRequest) Query() string {
	pairs := []string{
		"symbol=" + o.Symbol,
		"side=" + o.Side,
		"type=" + OrderTypeTrailingStopMarket,
		"quantity=" + strconv.FormatFloat(o.Quantity, 'f', o.QuantityPrec, 64),
		"callbackRate=" + trimFloat(o.CallbackRate),
		"stopPrice=" + strconv.FormatFloat(o.StopPrice, 'f', o.PricePrec, 64),
		"timestamp=" + strconv.FormatInt(o.Timestamp, 10),
	}
	return strings.Join(pairs, "&")
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// OrderResult — ответ биржи на размещённый ордер.
type OrderResult struct {
	OrderID       int64   `json:"orderId"`
	Symbol        string  `json:"symbol"`
	Status        string  `json:"status"`
	Side          string  `json:"side"`
	Type          string  `json:"type"`
	OrigQty       string  `json:"origQty"`
	StopPrice     string  `json:"stopPrice"`
	PriceRate     string  `json:"priceRate"`
	ActivatePrice string  `json:"activatePrice"`
	UpdateTime    int64   `json:"updateTime"`
	LastPrice     float64 `json:"-"`
}

// SymbolPrecision — точность количества и цены инструмента с биржи.
type SymbolPrecision struct {
	QuantityPrecision int
	PricePrecision    int
}

// UsdtBalance — запись USDT из фьючерсного аккаунта.
type UsdtBalance struct {
	Asset            string `json:"asset"`
	WalletBalance    string `json:"walletBalance"`
	AvailableBalance string `json:"availableBalance"`
	UnrealizedProfit string `json:"unrealizedProfit"`
	MarginBalance    string `json:"marginBalance"`
}

// Available parses availableBalance; 0 если поле нечитаемо.
func (b UsdtBalance) Available() float64 {
	v, err := strconv.ParseFloat(b.AvailableBalance, 64)
	if err != nil {
		return 0
	}
	return v
}

func (b UsdtBalance) String() string {
	return fmt.Sprintf("%s avail=%s wallet=%s", b.Asset, b.AvailableBalance, b.WalletBalance)
}
