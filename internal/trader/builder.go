package trader

import (
	"fmt"
	"math"

	"signal_bot/internal/models"
)

const (
	// callbackRate трейлинга в процентах, как ожидает биржа
	callbackRate = 0.1
	// смещение stopPrice от последней цены
	trailingOffsetPct = 0.1

	takeProfitPct = 0.07
	stopLossPct   = 0.02
)

// roundTo — округление до prec знаков после запятой.
func roundTo(v float64, prec int) float64 {
	p := math.Pow(10, float64(prec))
	return math.Round(v*p) / p
}

// BuildTrailingStop собирает TRAILING_STOP_MARKET ордер. Единая точка и для
// входа (количество = баланс/цена), и для закрытия по монитору (количество
// позиции, сторона противоположная). Нулевое или нечисловое количество —
// ErrInvalidQuantity до любого похода на биржу.
func BuildTrailingStop(
	decision models.Decision,
	symbol string,
	quantity, lastPrice float64,
	prec models.SymbolPrecision,
	timestamp int64,
) (models.OrderRequest, error) {

	if decision != models.DecisionBuy && decision != models.DecisionSell {
		return models.OrderRequest{}, fmt.Errorf("BuildTrailingStop: decision %q is not tradable", decision)
	}

	qty := roundTo(quantity, prec.QuantityPrecision)
	if math.IsNaN(qty) || math.IsInf(qty, 0) || qty <= 0 {
		return models.OrderRequest{}, fmt.Errorf(
			"BuildTrailingStop %s: quantity=%v: %w", symbol, quantity, models.ErrInvalidQuantity)
	}

	stop := lastPrice * (1 - trailingOffsetPct)
	if decision == models.DecisionSell {
		stop = lastPrice * (1 + trailingOffsetPct)
	}

	return models.OrderRequest{
		Symbol:       symbol,
		Side:         decision.Side(),
		Quantity:     qty,
		QuantityPrec: prec.QuantityPrecision,
		CallbackRate: callbackRate,
		StopPrice:    roundTo(stop, prec.PricePrecision),
		PricePrec:    prec.PricePrecision,
		Timestamp:    timestamp,
	}, nil
}

// targets — цели позиции от цены входа: +7%/-2% для лонга, зеркально для шорта.
func targets(decision models.Decision, entry float64) (takeProfit, stopLoss float64) {
	if decision == models.DecisionBuy {
		return entry * (1 + takeProfitPct), entry * (1 - stopLossPct)
	}
	return entry * (1 - takeProfitPct), entry * (1 + stopLossPct)
}
