package periodlock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTryAcquireIsExclusivePerKey(t *testing.T) {
	l := New()

	assert.True(t, l.TryAcquire("period-1"))
	assert.False(t, l.TryAcquire("period-1"))

	l.Release("period-1")
	assert.True(t, l.TryAcquire("period-1"))
}

func TestIndependentKeysDoNotBlock(t *testing.T) {
	l := New()

	assert.True(t, l.TryAcquire("period-1"))
	assert.True(t, l.TryAcquire("period-2"))
}

func TestConcurrentAcquireAdmitsExactlyOne(t *testing.T) {
	l := New()

	const workers = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	acquired := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.TryAcquire("period-1") {
				mu.Lock()
				acquired++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, acquired)
}
