package monitor

import (
	"sync"

	"signal_bot/internal/models"
)

// Tracker — отслеживаемые позиции, не больше одной на символ.
// Один мьютекс на всю коллекцию: проверка цены, закрытие и удаление
// позиции идут единой секцией, поэтому Do отдаёт мапу под локом.
type Tracker struct {
	mu        sync.Mutex
	positions map[string]models.TrackedPosition
}

func NewTracker() *Tracker {
	return &Tracker{
		positions: make(map[string]models.TrackedPosition),
	}
}

// Do выполняет fn, удерживая лок. fn может читать и менять мапу;
// возвращать управление, не дождавшись конца секции, нельзя.
func (t *Tracker) Do(fn func(positions map[string]models.TrackedPosition)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.positions)
}

// Track записывает позицию, затирая предыдущую по тому же символу.
func (t *Tracker) Track(pos models.TrackedPosition) {
	t.Do(func(positions map[string]models.TrackedPosition) {
		positions[pos.Symbol] = pos
	})
}

func (t *Tracker) Get(symbol string) (models.TrackedPosition, bool) {
	var (
		pos models.TrackedPosition
		ok  bool
	)
	t.Do(func(positions map[string]models.TrackedPosition) {
		pos, ok = positions[symbol]
	})
	return pos, ok
}

func (t *Tracker) Remove(symbol string) {
	t.Do(func(positions map[string]models.TrackedPosition) {
		delete(positions, symbol)
	})
}

func (t *Tracker) Len() int {
	var n int
	t.Do(func(positions map[string]models.TrackedPosition) {
		n = len(positions)
	})
	return n
}
