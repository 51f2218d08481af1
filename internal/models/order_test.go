package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderRequest_QueryOrderAndFormatting(t *testing.T) {
	order := OrderRequest{
		Symbol:       "BTCUSDT",
		Side:         "BUY",
		Quantity:     20,
		QuantityPrec: 2,
		CallbackRate: 0.1,
		StopPrice:    45,
		PricePrec:    2,
		Timestamp:    1700000000000,
	}

	assert.Equal(t,
		"symbol=BTCUSDT&side=BUY&type=TRAILING_STOP_MARKET&quantity=20.00&callbackRate=0.1&stopPrice=45.00&timestamp=1700000000000",
		order.Query(),
	)
}

func TestDecision_SideAndOpposite(t *testing.T) {
	assert.Equal(t, "BUY", DecisionBuy.Side())
	assert.Equal(t, "SELL", DecisionSell.Side())
	assert.Equal(t, DecisionSell, DecisionBuy.Opposite())
	assert.Equal(t, DecisionBuy, DecisionSell.Opposite())
}

func TestTrackedPosition_ShouldClose(t *testing.T) {
	long := TrackedPosition{Decision: DecisionBuy, TakeProfit: 110, StopLoss: 95}
	assert.True(t, long.ShouldClose(112))
	assert.True(t, long.ShouldClose(94))
	assert.False(t, long.ShouldClose(100))

	short := TrackedPosition{Decision: DecisionSell, TakeProfit: 90, StopLoss: 105}
	assert.True(t, short.ShouldClose(89))
	assert.True(t, short.ShouldClose(106))
	assert.False(t, short.ShouldClose(100))
}
