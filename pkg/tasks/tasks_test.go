package tasks

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickerFiresAndStops(t *testing.T) {
	var count atomic.Int32
	ticker := NewTicker(10*time.Millisecond, func() {
		count.Add(1)
	})

	assert.Eventually(t, func() bool { return count.Load() >= 2 }, time.Second, 5*time.Millisecond)

	ticker.Stop()
	after := count.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, count.Load())

	// Stop is idempotent.
	ticker.Stop()
}
