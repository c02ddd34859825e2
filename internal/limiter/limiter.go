package limiter

import (
	"fmt"
	"sync"

	"templechat/internal/logger"
)

// MaxTurns is the hard cap on user-initiated turns for the lifetime of the
// persisted store.
const MaxTurns = 80

// counterKey is the fixed name of the persisted turn counter.
const counterKey = "total_chat_count"

// Limiter tracks cumulative consumed turns against the hard cap. The
// counter is monotonically non-decreasing; it is only ever incremented by
// exactly one per accepted turn, and cleared by Reset.
type Limiter struct {
	mu    sync.Mutex
	store CounterStore
	max   int
}

// New creates a Limiter persisting through the given store with the
// standard MaxTurns cap.
func New(store CounterStore) *Limiter {
	return &Limiter{store: store, max: MaxTurns}
}

// NewWithMax creates a Limiter with a custom cap. Used by tests.
func NewWithMax(store CounterStore, max int) *Limiter {
	return &Limiter{store: store, max: max}
}

// CanSubmit reports whether another turn may be consumed. Pure read, no
// side effect. A store read failure is logged and treated as an empty
// counter so a damaged state file does not lock the user out.
func (l *Limiter) CanSubmit() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.consumed() < l.max
}

// RecordTurn increments the consumed counter by one. It must only be
// called after a successful CanSubmit check for the same logical turn;
// calling it with the limit already reached is a contract violation and is
// rejected to guard against double-increment races.
func (l *Limiter) RecordTurn() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	count := l.consumed()
	if count >= l.max {
		return fmt.Errorf("turn limit already reached (%d/%d)", count, l.max)
	}
	if err := l.store.Set(counterKey, count+1); err != nil {
		return fmt.Errorf("failed to persist turn counter: %w", err)
	}
	return nil
}

// Remaining returns how many turns are left. A negative value would mean
// the invariant was violated outside this process; it is logged and
// clamped to 0 for display.
func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	remaining := l.max - l.consumed()
	if remaining < 0 {
		logger.Warn("turn counter exceeds the cap", "remaining", remaining, "max", l.max)
		return 0
	}
	return remaining
}

// Reset clears the consumed counter. Invoked only by the explicit
// delete-records action.
func (l *Limiter) Reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Set(counterKey, 0); err != nil {
		return fmt.Errorf("failed to reset turn counter: %w", err)
	}
	return nil
}

// consumed reads the persisted counter. Callers must hold l.mu.
func (l *Limiter) consumed() int {
	count, err := l.store.Get(counterKey)
	if err != nil {
		logger.Warn("failed to read turn counter", "error", err)
		return 0
	}
	return count
}
