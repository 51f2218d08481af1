package service

import (
	"context"
	"sync"

	bservice "signal_bot/internal/modules/binance_client/service"
	wsservice "signal_bot/internal/modules/binance_ws/service"
	"signal_bot/pkg/logger"
)

// Warmuper наполняет кэш цен REST-ом до того, как поднимется стрим:
// монитору не приходится ждать первого websocket-кадра.
type Warmuper struct {
	client *bservice.Client
	cache  *wsservice.PriceCache

	// ограничитель параллелизма, чтобы не словить rate limit
	sem chan struct{}
}

func NewWarmuper(client *bservice.Client, cache *wsservice.PriceCache) *Warmuper {
	return &Warmuper{
		client: client,
		cache:  cache,
		sem:    make(chan struct{}, 8), // 8 параллельных символов
	}
}

func (w *Warmuper) Warmup(ctx context.Context, symbols []string) error {
	if len(symbols) == 0 {
		return nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, sym := range symbols {
		sym := sym
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.sem <- struct{}{}
			defer func() { <-w.sem }()

			price, err := w.client.GetLastPrice(ctx, sym)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			w.cache.Set(sym, price)
		}()
	}

	wg.Wait()

	if firstErr != nil {
		logger.Error("warmup finished with error: %v", firstErr)
		return firstErr
	}
	return nil
}
