// Package prom exposes adapter hooks as Prometheus counters.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/rediscache"
)

// Hooks counts lookups, store errors, short writes and unhandled events.
// Register it with a prometheus.Registerer before use.
type Hooks struct {
	lookups    *prometheus.CounterVec
	storeErrs  *prometheus.CounterVec
	shortWrite prometheus.Counter
	unhandled  prometheus.Counter
}

var (
	_ rediscache.Hooks     = (*Hooks)(nil)
	_ prometheus.Collector = (*Hooks)(nil)
)

// New builds the counters under namespace (e.g. "proxy"); empty means "rediscache".
func New(namespace string) *Hooks {
	if namespace == "" {
		namespace = "rediscache"
	}
	return &Hooks{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Lookup and read events by event and result (hit, miss)",
		}, []string{"event", "result"}),
		storeErrs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Failed store calls by operation",
		}, []string{"op"}),
		shortWrite: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "short_writes_total",
			Help:      "Appends that reported fewer bytes than were written",
		}),
		unhandled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unhandled_events_total",
			Help:      "Events the adapter does not handle",
		}),
	}
}

func (h *Hooks) Describe(ch chan<- *prometheus.Desc) {
	h.lookups.Describe(ch)
	h.storeErrs.Describe(ch)
	h.shortWrite.Describe(ch)
	h.unhandled.Describe(ch)
}

func (h *Hooks) Collect(ch chan<- prometheus.Metric) {
	h.lookups.Collect(ch)
	h.storeErrs.Collect(ch)
	h.shortWrite.Collect(ch)
	h.unhandled.Collect(ch)
}

func (h *Hooks) CacheHit(ev rediscache.Event, _ string, _ int) {
	h.lookups.WithLabelValues(ev.String(), "hit").Inc()
}

func (h *Hooks) CacheMiss(ev rediscache.Event, _ string) {
	h.lookups.WithLabelValues(ev.String(), "miss").Inc()
}

func (h *Hooks) StoreError(op, _ string, _ error) {
	h.storeErrs.WithLabelValues(op).Inc()
}

func (h *Hooks) ShortWrite(string, int, int64) { h.shortWrite.Inc() }

func (h *Hooks) UnhandledEvent(rediscache.Event) { h.unhandled.Inc() }
