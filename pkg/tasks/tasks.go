package tasks

import (
	"sync"
	"time"
)

// Ticker runs a function at a fixed interval in the background until
// stopped. The app uses it to report search progress while an engine runs.
type Ticker struct {
	stop          chan struct{}
	stopped       bool
	stopMutex     sync.Mutex
	notifyStopped chan struct{}
}

// NewTicker starts f on its own goroutine, once per duration.
func NewTicker(duration time.Duration, f func()) *Ticker {
	t := &Ticker{
		stop:          make(chan struct{}, 1),
		notifyStopped: make(chan struct{}),
	}

	go func() {
		defer close(t.notifyStopped)
		tickChan := time.NewTicker(duration)
		defer tickChan.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-tickChan.C:
				f()
			}
		}
	}()

	return t
}

// Stop ends the ticker and waits for the worker goroutine to return. Safe to
// call more than once.
func (t *Ticker) Stop() {
	t.stopMutex.Lock()
	defer t.stopMutex.Unlock()
	if t.stopped {
		return
	}
	close(t.stop)
	<-t.notifyStopped
	t.stopped = true
}
