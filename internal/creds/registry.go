package creds

import (
	"sync"

	"signal_bot/internal/models"
)

// Registry — ключи API по идентификатору биржи на время жизни процесса.
// Явный объект вместо глобальной мапы: передаётся через fx туда, где нужен.
type Registry struct {
	mu   sync.RWMutex
	keys map[string]models.Credentials
}

func NewRegistry() *Registry {
	return &Registry{
		keys: make(map[string]models.Credentials),
	}
}

// Set stores the key pair for an exchange, overwriting any previous pair.
func (r *Registry) Set(exchangeID string, c models.Credentials) {
	c.ExchangeID = exchangeID

	r.mu.Lock()
	r.keys[exchangeID] = c
	r.mu.Unlock()
}

func (r *Registry) Get(exchangeID string) (models.Credentials, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.keys[exchangeID]
	return c, ok
}
