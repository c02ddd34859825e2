package limiter

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterFreshStore(t *testing.T) {
	l := New(NewMemoryCounterStore())

	assert.True(t, l.CanSubmit())
	assert.Equal(t, MaxTurns, l.Remaining())
}

func TestLimiterRecordTurn(t *testing.T) {
	store := NewMemoryCounterStore()
	l := New(store)

	require.NoError(t, l.RecordTurn())
	assert.Equal(t, MaxTurns-1, l.Remaining())

	count, err := store.Get("total_chat_count")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLimiterExhaustion(t *testing.T) {
	l := NewWithMax(NewMemoryCounterStore(), 3)

	for i := 0; i < 3; i++ {
		require.True(t, l.CanSubmit())
		require.NoError(t, l.RecordTurn())
	}

	assert.False(t, l.CanSubmit())
	assert.Equal(t, 0, l.Remaining())

	// RecordTurn past the cap is a contract violation and must not
	// increment.
	err := l.RecordTurn()
	assert.Error(t, err)
	assert.Equal(t, 0, l.Remaining())
}

func TestLimiterReset(t *testing.T) {
	l := NewWithMax(NewMemoryCounterStore(), 5)

	for i := 0; i < 5; i++ {
		require.NoError(t, l.RecordTurn())
	}
	require.False(t, l.CanSubmit())

	require.NoError(t, l.Reset())
	assert.True(t, l.CanSubmit())
	assert.Equal(t, 5, l.Remaining())
}

func TestLimiterRemainingClampsCorruptCounter(t *testing.T) {
	store := NewMemoryCounterStore()
	require.NoError(t, store.Set("total_chat_count", MaxTurns+7))

	l := New(store)
	assert.Equal(t, 0, l.Remaining())
	assert.False(t, l.CanSubmit())
}

func TestLimiterConcurrentRecordNeverOvershoots(t *testing.T) {
	const max = 10
	l := NewWithMax(NewMemoryCounterStore(), max)

	var wg sync.WaitGroup
	accepted := make(chan struct{}, max*3)
	for i := 0; i < max*3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.RecordTurn(); err == nil {
				accepted <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(accepted)

	assert.Len(t, accepted, max)
	assert.Equal(t, 0, l.Remaining())
}

func TestFileCounterStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	l := New(NewFileCounterStore(dir))
	require.NoError(t, l.RecordTurn())
	require.NoError(t, l.RecordTurn())

	// A new store over the same directory models a process restart.
	restarted := New(NewFileCounterStore(dir))
	assert.Equal(t, MaxTurns-2, restarted.Remaining())
}

func TestFileCounterStoreMissingFileReadsZero(t *testing.T) {
	store := NewFileCounterStore(t.TempDir())

	count, err := store.Get("total_chat_count")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
