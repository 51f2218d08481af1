package service

import (
	"sync"
	"time"
)

// за этим порогом цена считается протухшей и кэш её не отдаёт
const maxPriceAge = 2 * time.Minute

type cachedPrice struct {
	price float64
	at    time.Time
}

// PriceCache — последние mark-price по символам.
// Пишет стрим, читает монитор позиций; при протухшей записи
// читатель сам сходит в REST.
type PriceCache struct {
	mu     sync.RWMutex
	prices map[string]cachedPrice
}

func NewPriceCache() *PriceCache {
	return &PriceCache{prices: make(map[string]cachedPrice)}
}

func (p *PriceCache) Set(symbol string, price float64) {
	p.mu.Lock()
	p.prices[symbol] = cachedPrice{price: price, at: time.Now()}
	p.mu.Unlock()
}

// Get возвращает цену и признак свежести.
func (p *PriceCache) Get(symbol string) (float64, bool) {
	p.mu.RLock()
	entry, ok := p.prices[symbol]
	p.mu.RUnlock()

	if !ok || entry.price <= 0 {
		return 0, false
	}
	if time.Since(entry.at) > maxPriceAge {
		return 0, false
	}
	return entry.price, true
}
