package threat

import (
	"sync"
	"time"
)

// windowCounters holds fixed-window counters keyed by string. Each entry
// carries its own mutex, so request paths for different keys never contend
// and sweeps only touch one entry at a time.
type windowCounters struct {
	window  time.Duration
	entries sync.Map // string -> *windowEntry
}

type windowEntry struct {
	mu       sync.Mutex
	start    time.Time
	count    int
	distinct map[string]struct{}
	dead     bool
}

func newWindowCounters(window time.Duration) *windowCounters {
	return &windowCounters{window: window}
}

// add counts one hit for key and returns the count in the current window.
func (w *windowCounters) add(key string, now time.Time) int {
	var n int
	w.update(key, now, func(e *windowEntry) {
		e.count++
		n = e.count
	})
	return n
}

// addDistinct records member under key and returns how many distinct
// members the current window has seen.
func (w *windowCounters) addDistinct(key, member string, now time.Time) int {
	var n int
	w.update(key, now, func(e *windowEntry) {
		if e.distinct == nil {
			e.distinct = make(map[string]struct{})
		}
		e.distinct[member] = struct{}{}
		n = len(e.distinct)
	})
	return n
}

func (w *windowCounters) update(key string, now time.Time, fn func(e *windowEntry)) {
	for {
		v, _ := w.entries.LoadOrStore(key, &windowEntry{start: now})
		e := v.(*windowEntry)
		e.mu.Lock()
		if e.dead {
			// swept between load and lock
			e.mu.Unlock()
			continue
		}
		if now.Sub(e.start) >= w.window {
			e.start = now
			e.count = 0
			e.distinct = nil
		}
		fn(e)
		e.mu.Unlock()
		return
	}
}

func (w *windowCounters) forget(key string) {
	if v, ok := w.entries.LoadAndDelete(key); ok {
		e := v.(*windowEntry)
		e.mu.Lock()
		e.dead = true
		e.mu.Unlock()
	}
}

// sweep drops entries whose window has elapsed and returns how many.
func (w *windowCounters) sweep(now time.Time) int {
	removed := 0
	w.entries.Range(func(k, v interface{}) bool {
		e := v.(*windowEntry)
		e.mu.Lock()
		if now.Sub(e.start) >= w.window {
			e.dead = true
			w.entries.CompareAndDelete(k, v)
			removed++
		}
		e.mu.Unlock()
		return true
	})
	return removed
}

func (w *windowCounters) reset() int {
	removed := 0
	w.entries.Range(func(k, _ interface{}) bool {
		w.forget(k.(string))
		removed++
		return true
	})
	return removed
}

func (w *windowCounters) len() int {
	n := 0
	w.entries.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}
