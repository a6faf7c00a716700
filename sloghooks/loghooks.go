package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/rediscache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	HitEvery  uint64
	MissEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	hitCtr  atomic.Uint64
	missCtr atomic.Uint64
}

var _ rediscache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) CacheHit(ev rediscache.Event, storageKey string, delivered int) {
	if h.l == nil || !sample(h.opts.HitEvery, &h.hitCtr) {
		return
	}
	h.l.Debug("rediscache.hit",
		"event", ev.String(),
		"key", h.redact(storageKey),
		"delivered", delivered)
}

func (h *Hooks) CacheMiss(ev rediscache.Event, storageKey string) {
	if h.l == nil || !sample(h.opts.MissEvery, &h.missCtr) {
		return
	}
	h.l.Debug("rediscache.miss",
		"event", ev.String(),
		"key", h.redact(storageKey))
}

func (h *Hooks) StoreError(op, storageKey string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("rediscache.store_error",
		"op", op,
		"key", h.redact(storageKey),
		"err", err)
}

func (h *Hooks) ShortWrite(storageKey string, want int, got int64) {
	if h.l == nil {
		return
	}
	h.l.Warn("rediscache.short_write",
		"key", h.redact(storageKey),
		"want", want,
		"got", got)
}

func (h *Hooks) UnhandledEvent(ev rediscache.Event) {
	if h.l == nil {
		return
	}
	h.l.Error("rediscache.unhandled_event",
		"event", ev.String())
}
