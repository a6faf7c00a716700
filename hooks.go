package rediscache

// Hooks are lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; they run inside Handle while
// the proxy waits for its reply.
type Hooks interface {
	// A lookup or read found the key. delivered is the payload length
	// (0 for existence checks and windows past the end of the value).
	CacheHit(ev Event, storageKey string, delivered int)

	// A lookup or read did not find the key, or the store failed.
	CacheMiss(ev Event, storageKey string)

	// A store call failed. op ∈ {"get", "exists", "append", "del"}.
	StoreError(op, storageKey string, err error)

	// Append reported fewer bytes than were consolidated.
	ShortWrite(storageKey string, want int, got int64)

	// The dispatcher received an event it does not handle.
	UnhandledEvent(ev Event)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) CacheHit(Event, string, int)      {}
func (NopHooks) CacheMiss(Event, string)          {}
func (NopHooks) StoreError(string, string, error) {}
func (NopHooks) ShortWrite(string, int, int64)    {}
func (NopHooks) UnhandledEvent(Event)             {}

// MultiHooks fans every call out to hs in order. Nil entries are skipped.
func MultiHooks(hs ...Hooks) Hooks {
	out := make(multiHooks, 0, len(hs))
	for _, h := range hs {
		if h != nil {
			out = append(out, h)
		}
	}
	if len(out) == 0 {
		return NopHooks{}
	}
	return out
}

type multiHooks []Hooks

func (m multiHooks) CacheHit(ev Event, k string, n int) {
	for _, h := range m {
		h.CacheHit(ev, k, n)
	}
}

func (m multiHooks) CacheMiss(ev Event, k string) {
	for _, h := range m {
		h.CacheMiss(ev, k)
	}
}

func (m multiHooks) StoreError(op, k string, err error) {
	for _, h := range m {
		h.StoreError(op, k, err)
	}
}

func (m multiHooks) ShortWrite(k string, want int, got int64) {
	for _, h := range m {
		h.ShortWrite(k, want, got)
	}
}

func (m multiHooks) UnhandledEvent(ev Event) {
	for _, h := range m {
		h.UnhandledEvent(ev)
	}
}
