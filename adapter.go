package rediscache

import (
	"context"
	"time"
)

// Adapter translates proxy cache events into store calls. It keeps no state
// between events besides the shared connection.
type Adapter struct {
	conn          *Conn
	log           Logger
	hooks         Hooks
	prefix        string
	silentUnknown bool
	pingTimeout   time.Duration
}

var _ Handler = (*Adapter)(nil)

// Handle dispatches one event and returns the status of the reply handed to
// txn. Every known event produces exactly one reply, whatever the store does.
func (a *Adapter) Handle(ctx context.Context, ev Event, txn Transaction) int {
	if txn == nil {
		a.log.Warn("event without transaction dropped", Fields{"event": ev.String()})
		return 0
	}
	switch ev {
	case EventLookup, EventRead:
		return a.read(ctx, ev, txn)
	case EventWrite, EventWriteHeader:
		return a.write(ctx, txn)
	case EventDelete:
		return a.remove(ctx, txn)
	case EventClose:
		return txn.Report(Closed, nil, 0)
	default:
		return a.unhandled(ev, txn)
	}
}

// Close releases the store connection. Handle keeps replying afterwards,
// treating every store call as failed.
func (a *Adapter) Close(ctx context.Context) error {
	if a.conn == nil {
		return nil
	}
	return a.conn.Close(ctx)
}

// storeKey forms the store key for txn. ok is false when the key is empty or
// there is no connection; callers then reply without touching the store.
func (a *Adapter) storeKey(txn Transaction) (key string, ok bool) {
	k := txn.CacheKey()
	if len(k) == 0 || a.conn == nil {
		return "", false
	}
	return a.prefix + string(k), true
}

func (a *Adapter) read(ctx context.Context, ev Event, txn Transaction) int {
	size, offset := txn.BufferInfo()
	w := Window{Offset: offset, Size: size}

	key, ok := a.storeKey(txn)
	if !ok {
		a.log.Debug("read skipped: no key or connection", Fields{"event": ev.String()})
		return txn.Report(readOutcome(ev, false), nil, 0)
	}

	if w.Size == 0 {
		found, err := a.conn.Exists(ctx, key)
		if err != nil {
			a.hooks.StoreError("exists", key, err)
			a.log.Debug("cache exists failed", Fields{"key": logKey(key), "err": err})
		}
		if found {
			a.hooks.CacheHit(ev, key, 0)
			a.log.Debug("cache hit", Fields{"key": logKey(key), "event": ev.String()})
		} else {
			a.hooks.CacheMiss(ev, key)
			a.log.Debug("cache miss", Fields{"key": logKey(key), "event": ev.String()})
		}
		return txn.Report(readOutcome(ev, false), nil, 0)
	}

	val, found, err := a.conn.Get(ctx, key)
	if err != nil {
		a.hooks.StoreError("get", key, err)
		a.log.Debug("cache get failed", Fields{"key": logKey(key), "err": err})
	}
	if !found {
		a.hooks.CacheMiss(ev, key)
		a.log.Debug("cache miss", Fields{"key": logKey(key), "event": ev.String()})
		return txn.Report(readOutcome(ev, false), nil, 0)
	}

	res := w.Slice(val)
	a.hooks.CacheHit(ev, key, len(res.Data))
	a.log.Debug("cache hit", Fields{
		"key":       logKey(key),
		"event":     ev.String(),
		"value_len": len(val),
		"offset":    w.Offset,
		"delivered": len(res.Data),
		"more":      res.More,
	})
	return txn.Report(readOutcome(ev, res.More), res.Data, res.Len())
}

func (a *Adapter) write(ctx context.Context, txn Transaction) int {
	key, ok := a.storeKey(txn)
	if !ok {
		a.log.Debug("write skipped: no key or connection", nil)
		return txn.Report(WriteComplete, nil, 0)
	}

	buf := txn.OutgoingBuffer()
	if buf == nil {
		return txn.Report(WriteComplete, nil, 0)
	}
	data := Consolidate(buf)
	if len(data) == 0 {
		return txn.Report(WriteComplete, nil, 0)
	}

	n, err := a.conn.Append(ctx, key, data)
	switch {
	case err != nil:
		a.hooks.StoreError("append", key, err)
		a.log.Debug("cache append failed", Fields{"key": logKey(key), "bytes": len(data), "err": err})
	case n < int64(len(data)):
		a.hooks.ShortWrite(key, len(data), n)
		a.log.Debug("cache append short", Fields{"key": logKey(key), "bytes": len(data), "reported": n})
	default:
		a.log.Debug("cache append", Fields{"key": logKey(key), "bytes": len(data), "value_len": n})
	}
	// write failures are not surfaced; the proxy only learns what was attempted
	return txn.Report(WriteComplete, nil, uint64(len(data)))
}

func (a *Adapter) remove(ctx context.Context, txn Transaction) int {
	key, ok := a.storeKey(txn)
	if !ok {
		a.log.Debug("delete skipped: no key or connection", nil)
		return txn.Report(DeleteComplete, nil, 0)
	}
	if err := a.conn.Del(ctx, key); err != nil {
		a.hooks.StoreError("del", key, err)
		a.log.Debug("cache delete failed", Fields{"key": logKey(key), "err": err})
	} else {
		a.log.Debug("cache delete", Fields{"key": logKey(key)})
	}
	return txn.Report(DeleteComplete, nil, 0)
}

func (a *Adapter) unhandled(ev Event, txn Transaction) int {
	a.hooks.UnhandledEvent(ev)
	a.log.Warn("unknown cache event", Fields{"event": ev.String()})
	if a.silentUnknown {
		return 0
	}
	return txn.Report(Unhandled, nil, 0)
}
