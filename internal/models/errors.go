package models

import (
	"errors"
	"fmt"
)

// Ошибки ядра. Индикаторы/паттерны/уровни ошибок не возвращают вовсе —
// нехватка данных деградирует в "недоступно", а не в error.
var (
	// ErrUpstreamUnavailable — сеть/не-2xx от маркет-даты или биржи.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrAccountUnavailable — в ответе аккаунта нет записи USDT.
	ErrAccountUnavailable = errors.New("account unavailable")

	// ErrInvalidQuantity — рассчитанное количество ордера некорректно.
	ErrInvalidQuantity = errors.New("invalid order quantity")
)

// TradeExecutionError carries the exchange rejection message verbatim.
type TradeExecutionError struct {
	Reason string
}

func (e *TradeExecutionError) Error() string {
	return fmt.Sprintf("trade execution failed: %s", e.Reason)
}

func NewTradeExecutionError(format string, args ...any) *TradeExecutionError {
	return &TradeExecutionError{Reason: fmt.Sprintf(format, args...)}
}
