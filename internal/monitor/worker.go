package monitor

import (
	"context"
	"time"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"
)

// Closer закрывает позицию встречным ордером. Реализуется трейдером.
type Closer interface {
	ClosePosition(ctx context.Context, pos models.TrackedPosition, price float64) error
}

// PriceCache — свежие цены из websocket-стрима.
type PriceCache interface {
	Get(symbol string) (price float64, ok bool)
}

// PriceFetcher — REST-фолбэк, когда кэш пуст или протух.
type PriceFetcher interface {
	GetLastPrice(ctx context.Context, symbol string) (float64, error)
}

// Pulse получает отметку каждого прохода монитора. Реализуется health-стейтом.
type Pulse interface {
	TouchTick(t time.Time)
}

// Worker раз в период обходит отслеживаемые позиции и закрывает те,
// чья цена дошла до тейка или стопа.
type Worker struct {
	tracker *Tracker
	closer  Closer
	cache   PriceCache
	prices  PriceFetcher
	pulse   Pulse

	period time.Duration
}

func NewWorker(tracker *Tracker, closer Closer, cache PriceCache, prices PriceFetcher, pulse Pulse, period time.Duration) *Worker {
	return &Worker{
		tracker: tracker,
		closer:  closer,
		cache:   cache,
		prices:  prices,
		pulse:   pulse,
		period:  period,
	}
}

// Run крутит тикер до отмены контекста. Ошибка по одному символу
// логируется и не трогает остальные.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep — один проход. Проверка, закрытие и удаление позиции идут
// под локом трекера, чтобы новый ордер по символу не потерялся.
func (w *Worker) Sweep(ctx context.Context) {
	if w.pulse != nil {
		w.pulse.TouchTick(time.Now())
	}

	w.tracker.Do(func(positions map[string]models.TrackedPosition) {
		for symbol, pos := range positions {
			price, err := w.currentPrice(ctx, symbol)
			if err != nil {
				logger.Error("monitor %s: price: %v", symbol, err)
				continue
			}

			if !pos.ShouldClose(price) {
				continue
			}

			if err := w.closer.ClosePosition(ctx, pos, price); err != nil {
				logger.Error("monitor %s: close: %v", symbol, err)
				continue
			}
			delete(positions, symbol)
		}
	})
}

func (w *Worker) currentPrice(ctx context.Context, symbol string) (float64, error) {
	if w.cache != nil {
		if price, ok := w.cache.Get(symbol); ok {
			return price, nil
		}
	}
	return w.prices.GetLastPrice(ctx, symbol)
}
