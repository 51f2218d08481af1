package models

import "time"

// TrackedPosition — открытая позиция под наблюдением монитора.
// Существует ровно пока ордер размещён и не закрыт; максимум одна на символ.
type TrackedPosition struct {
	Symbol      string
	Credentials Credentials
	Decision    Decision // Buy/Sell на входе
	Quantity    float64
	TakeProfit  float64
	StopLoss    float64
	OpenedAt    time.Time
}

// ShouldClose reports whether the current price crossed the
// take-profit or stop-loss threshold for this position.
func (p TrackedPosition) ShouldClose(price float64) bool {
	switch p.Decision {
	case DecisionBuy:
		return price >= p.TakeProfit || price <= p.StopLoss
	case DecisionSell:
		return price <= p.TakeProfit || price >= p.StopLoss
	}
	return false
}
