package rediscache

import (
	"context"
	"time"

	pr "github.com/unkn0wn-root/rediscache/provider"
)

const defaultPingTimeout = 10 * time.Second

// Options configure the adapter. Only Provider is required.
type Options struct {
	Provider pr.Provider // required; the adapter owns it from here on

	Logger    Logger          // if nil, NopLogger is used
	Hooks     Hooks           // if nil, NopHooks is used
	Latency   LatencyRecorder // optional per-call store latency sink
	KeyPrefix string          // prepended to every cache key; empty keeps keys verbatim

	// SilentUnknown sends no reply for unknown events instead of Unhandled.
	SilentUnknown bool

	PingTimeout time.Duration // startup health check; 0 => 10s
}

// New builds an adapter around opts.Provider without touching the store.
// Most callers want Init.
func New(opts Options) (*Adapter, error) {
	conn, err := NewConn(opts.Provider, opts.Latency)
	if err != nil {
		return nil, err
	}
	return &Adapter{
		conn:          conn,
		log:           coalesce[Logger](opts.Logger, NopLogger{}),
		hooks:         coalesce[Hooks](opts.Hooks, NopHooks{}),
		prefix:        opts.KeyPrefix,
		silentUnknown: opts.SilentUnknown,
		pingTimeout:   coalesce[time.Duration](opts.PingTimeout, defaultPingTimeout),
	}, nil
}

// Init activates the adapter: it health-checks the store and, only if that
// succeeds, registers the adapter with reg. On any failure the provider is
// closed, nothing is registered and the cache adapter stays disabled for the
// life of the process. reg may be nil when the caller drives Handle itself.
func Init(ctx context.Context, reg Registrar, opts Options) (*Adapter, error) {
	log := coalesce[Logger](opts.Logger, NopLogger{})
	log.Debug("starting cache adapter", Fields{"prefix": opts.KeyPrefix})

	a, err := New(opts)
	if err != nil {
		log.Error("cache adapter disabled", Fields{"stage": "connect", "err": err})
		return nil, &InitError{Stage: "connect", Err: err}
	}

	pctx, cancel := context.WithTimeout(ctx, a.pingTimeout)
	defer cancel()
	if err := a.conn.Ping(pctx); err != nil {
		log.Error("cache adapter disabled", Fields{"stage": "ping", "err": err})
		_ = a.conn.Close(ctx)
		return nil, &InitError{Stage: "ping", Err: err}
	}

	if reg != nil {
		if err := reg.AddCacheHook(a); err != nil {
			log.Error("cache adapter disabled", Fields{"stage": "register", "err": err})
			_ = a.conn.Close(ctx)
			return nil, &InitError{Stage: "register", Err: err}
		}
	}
	log.Info("cache adapter enabled", nil)
	return a, nil
}
