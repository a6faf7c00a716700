// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    HitEvery:  100, // sample logs: ~every 100th hit
//	    MissEvery: 10,
//	})
//
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	a, err := rediscache.Init(ctx, registrar, rediscache.Options{
//	    Provider: redis.Dial(redis.DialConfig{}),
//	    Hooks:    hooks, // or `raw` if you don’t want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/rediscache"
)

// Hooks forwards every call to inner on worker goroutines. When the queue is
// full the call is dropped so Handle never waits on observers.
type Hooks struct {
	inner rediscache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ rediscache.Hooks = (*Hooks)(nil)

func New(inner rediscache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued calls and stops the workers. Hooks must not be used after Close.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) CacheMiss(ev rediscache.Event, k string) { h.try(func() { h.inner.CacheMiss(ev, k) }) }
func (h *Hooks) UnhandledEvent(ev rediscache.Event)      { h.try(func() { h.inner.UnhandledEvent(ev) }) }
func (h *Hooks) CacheHit(ev rediscache.Event, k string, n int) {
	h.try(func() { h.inner.CacheHit(ev, k, n) })
}
func (h *Hooks) StoreError(op, k string, err error) {
	h.try(func() { h.inner.StoreError(op, k, err) })
}
func (h *Hooks) ShortWrite(k string, want int, got int64) {
	h.try(func() { h.inner.ShortWrite(k, want, got) })
}
