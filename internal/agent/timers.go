package agent

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// cancelable wraps whatever Stop signature the underlying clock.Timer or
// clock.Ticker exposes (they differ: Timer.Stop returns bool, Ticker.Stop
// does not) behind one common shape for the ledger to hold.
type cancelable func()

func (c cancelable) Stop() { c() }

// timerLedger is the run-timer ledger (§3): a collection of cancelable
// handles for the keepalive cadence and every scheduled standalone check.
// Cleared atomically on pause (§4.1).
type timerLedger struct {
	mu      sync.Mutex
	handles map[string]cancelable
}

func newTimerLedger() *timerLedger {
	return &timerLedger{handles: map[string]cancelable{}}
}

func (l *timerLedger) put(name string, h cancelable) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handles[name] = h
}

func (l *timerLedger) has(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.handles[name]
	return ok
}

// clear cancels every handle and empties the ledger. Invariant 3 (§3): all
// entries are canceled before the agent leaves "pausing".
func (l *timerLedger) clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, h := range l.handles {
		h.Stop()
	}
	l.handles = map[string]cancelable{}
}

func (l *timerLedger) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.handles)
}

// runEvery starts clk-driven periodic invocations of fn with the given
// period, storing the ticker under name for later cancellation.
func (l *timerLedger) runEvery(clk clock.Clock, name string, period time.Duration, fn func()) {
	ticker := clk.Ticker(period)
	l.put(name, cancelable(ticker.Stop))
	go func() {
		for range ticker.C {
			fn()
		}
	}()
}

// runAfter schedules a one-shot fn after d, storing the timer under name.
func (l *timerLedger) runAfter(clk clock.Clock, name string, d time.Duration, fn func()) {
	timer := clk.Timer(d)
	l.put(name, cancelable(func() { timer.Stop() }))
	go func() {
		<-timer.C
		fn()
	}()
}
