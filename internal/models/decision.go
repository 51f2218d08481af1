package models

// Decision — итог оценки сигналов по символу.
type Decision string

const (
	DecisionBuy  Decision = "Buy"
	DecisionSell Decision = "Sell"
	DecisionHold Decision = "Hold"
)

// Side maps the decision onto the exchange order side.
func (d Decision) Side() string {
	if d == DecisionSell {
		return "SELL"
	}
	return "BUY"
}

// Opposite — сторона закрывающего ордера.
func (d Decision) Opposite() Decision {
	switch d {
	case DecisionBuy:
		return DecisionSell
	case DecisionSell:
		return DecisionBuy
	}
	return DecisionHold
}
