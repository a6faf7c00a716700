package ristretto

import (
	"context"
	"errors"
	"sync"
	"time"

	rc "github.com/dgraph-io/ristretto"

	pr "github.com/unkn0wn-root/rediscache/provider"
)

type Provider struct {
	mu  sync.Mutex // guards read-modify-write in Append
	c   *rc.Cache
	ttl time.Duration
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64 // bytes; each entry costs its length
	BufferItems int64
	TTL         time.Duration // 0 => no expiry
	Metrics     bool
}

func New(cfg Config) (*Provider, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Provider{c: c, ttl: cfg.TTL}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.get(key)
	return b, ok, nil
}

func (p *Provider) Exists(_ context.Context, key string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.get(key)
	return ok, nil
}

// Append rewrites the whole value; ristretto has no partial update. A write
// refused by the admission policy returns (0, nil) and leaves the old value.
func (p *Provider) Append(_ context.Context, key string, value []byte) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	old, _ := p.get(key)
	next := make([]byte, 0, len(old)+len(value))
	next = append(next, old...)
	next = append(next, value...)

	if !p.c.SetWithTTL(key, next, int64(len(next)), p.ttl) {
		return 0, nil
	}
	p.c.Wait() // make the write visible to the next Get
	if _, ok := p.c.Get(key); !ok {
		return 0, nil // dropped by the policy after buffering
	}
	return int64(len(next)), nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.c.Del(key)
	p.c.Wait()
	return nil
}

// Ping always succeeds; the cache lives in-process.
func (p *Provider) Ping(context.Context) error { return nil }

func (p *Provider) Close(_ context.Context) error {
	p.c.Wait()
	p.c.Close()
	return nil
}

// Helper to expose metrics if desired by the application (not part of provider.Provider).
func (p *Provider) Metrics() *rc.Metrics { return p.c.Metrics }

func (p *Provider) get(key string) ([]byte, bool) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false
	}
	b, _ := v.([]byte)
	if b == nil {
		// self-heal: drop unexpected entry shape
		p.c.Del(key)
		return nil, false
	}
	return b, true
}
