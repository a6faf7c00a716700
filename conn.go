package rediscache

import (
	"context"
	"sync"
	"time"

	pr "github.com/unkn0wn-root/rediscache/provider"
)

// LatencyRecorder receives the duration of every store call.
// op is one of "get", "exists", "append", "del", "ping".
type LatencyRecorder interface {
	Record(op string, d time.Duration)
}

type nopLatency struct{}

func (nopLatency) Record(string, time.Duration) {}

// Conn is the one connection to the store shared by all transactions.
// All calls are serialized by a single mutex; no other lock is taken while
// it is held.
type Conn struct {
	mu     sync.Mutex
	p      pr.Provider
	lat    LatencyRecorder
	closed bool
}

// NewConn wraps p. lat may be nil.
func NewConn(p pr.Provider, lat LatencyRecorder) (*Conn, error) {
	if p == nil {
		return nil, ErrNilProvider
	}
	return &Conn{p: p, lat: coalesce[LatencyRecorder](lat, nopLatency{})}, nil
}

// Get returns (value, true, nil) on hit and (nil, false, nil) on miss.
func (c *Conn) Get(ctx context.Context, key string) (v []byte, ok bool, err error) {
	err = c.do("get", func() error {
		v, ok, err = c.p.Get(ctx, key)
		return err
	})
	return v, ok, err
}

func (c *Conn) Exists(ctx context.Context, key string) (ok bool, err error) {
	err = c.do("exists", func() error {
		ok, err = c.p.Exists(ctx, key)
		return err
	})
	return ok, err
}

// Append appends value to the stored value and returns the provider's
// reported length after the append.
func (c *Conn) Append(ctx context.Context, key string, value []byte) (n int64, err error) {
	err = c.do("append", func() error {
		n, err = c.p.Append(ctx, key, value)
		return err
	})
	return n, err
}

func (c *Conn) Del(ctx context.Context, key string) error {
	return c.do("del", func() error { return c.p.Del(ctx, key) })
}

func (c *Conn) Ping(ctx context.Context) error {
	return c.do("ping", func() error { return c.p.Ping(ctx) })
}

// Close releases the provider. Repeated calls are no-ops.
func (c *Conn) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.p.Close(ctx)
}

func (c *Conn) do(op string, fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	start := time.Now()
	err := fn()
	c.lat.Record(op, time.Since(start))
	return err
}
