package lockout

import (
	"context"
	"sync"
)

// KeyedMutex serializes work per key. Entries are dropped once no goroutine
// holds or waits on them, so memory tracks in-flight keys only.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refSemaphore
}

type refSemaphore struct {
	ch   chan struct{}
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*refSemaphore)}
}

// Lock waits until key is free or ctx ends. On success it returns the
// matching unlock func; otherwise it returns ctx.Err() and holds nothing.
func (k *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refSemaphore{ch: make(chan struct{}, 1)}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	select {
	case m.ch <- struct{}{}:
		return func() {
			<-m.ch
			k.release(key, m)
		}, nil
	case <-ctx.Done():
		k.release(key, m)
		return nil, ctx.Err()
	}
}

func (k *KeyedMutex) release(key string, m *refSemaphore) {
	k.mu.Lock()
	defer k.mu.Unlock()
	m.refs--
	if m.refs == 0 {
		delete(k.locks, key)
	}
}

func (k *KeyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
