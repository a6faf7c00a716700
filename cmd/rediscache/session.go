package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/rediscache"
	"github.com/unkn0wn-root/rediscache/hooks/async"
	"github.com/unkn0wn-root/rediscache/hooks/prom"
	"github.com/unkn0wn-root/rediscache/internal/config"
	"github.com/unkn0wn-root/rediscache/internal/logging"
	rlog "github.com/unkn0wn-root/rediscache/log/logrus"
	"github.com/unkn0wn-root/rediscache/metrics"
	pr "github.com/unkn0wn-root/rediscache/provider"
	"github.com/unkn0wn-root/rediscache/provider/bigcache"
	"github.com/unkn0wn-root/rediscache/provider/redis"
	"github.com/unkn0wn-root/rediscache/provider/ristretto"
	"github.com/unkn0wn-root/rediscache/sloghooks"
)

var errDisabled = errors.New("cache adapter disabled")

// host stands in for the proxy's hook table: the adapter is only reachable
// through what Init registered.
type host struct {
	handler rediscache.Handler
}

func (h *host) AddCacheHook(hd rediscache.Handler) error {
	if h.handler != nil {
		return errors.New("cache hook already registered")
	}
	h.handler = hd
	return nil
}

func (h *host) dispatch(ctx context.Context, ev rediscache.Event, txn rediscache.Transaction) (int, error) {
	if h.handler == nil {
		return 0, errDisabled
	}
	return h.handler.Handle(ctx, ev, txn), nil
}

type session struct {
	app     *app
	host    host
	adapter *rediscache.Adapter
	latency *metrics.LatencyTracker
	reg     *prometheus.Registry
	async   *asynchook.Hooks
}

func openSession(ctx context.Context, a *app) (*session, error) {
	p, err := openProvider(a.cfg)
	if err != nil {
		return nil, err
	}

	s := &session{
		app:     a,
		latency: metrics.NewLatencyTracker(0.01),
		reg:     prometheus.NewRegistry(),
	}
	counters := prom.New("rediscache")
	if err := s.reg.Register(counters); err != nil {
		return nil, err
	}
	hooks := []rediscache.Hooks{counters}
	if a.logger.IsLevelEnabled(logrus.DebugLevel) {
		sl := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		s.async = asynchook.New(sloghooks.New(sl, sloghooks.Options{}), 1, 256)
		hooks = append(hooks, s.async)
	}

	adapter, err := rediscache.Init(ctx, &s.host, rediscache.Options{
		Provider:      p,
		Logger:        rlog.New(a.logger),
		Hooks:         rediscache.MultiHooks(hooks...),
		Latency:       s.latency,
		KeyPrefix:     a.cfg.KeyPrefix,
		SilentUnknown: a.cfg.SilentUnknown,
		PingTimeout:   a.cfg.Store.Timeout.DurationValue(),
	})
	if err != nil {
		// nothing registered; dispatch reports errDisabled
		fields := logging.BaseFields("init", a.configPath)
		fields["backend"] = a.cfg.Store.Backend
		a.logger.WithFields(fields).WithError(err).Error("cache adapter disabled")
		return s, nil
	}
	s.adapter = adapter
	return s, nil
}

func (s *session) dispatch(ctx context.Context, ev rediscache.Event, txn rediscache.Transaction) (int, error) {
	return s.host.dispatch(ctx, ev, txn)
}

func (s *session) close(ctx context.Context) {
	if s.async != nil {
		s.async.Close()
	}
	if s.adapter != nil {
		if err := s.adapter.Close(ctx); err != nil {
			s.app.logger.WithError(err).Warn("close store")
		}
	}
	if s.app.showStats {
		s.printStats()
	}
}

func (s *session) printStats() {
	for _, op := range s.latency.Operations() {
		st, err := s.latency.GetStats(op)
		if err != nil {
			continue
		}
		fmt.Fprintf(stdErr, "store.%s count=%d p50=%.3fms p99=%.3fms max=%.3fms\n",
			st.Operation, st.Count, st.P50, st.P99, st.Max)
	}
	families, err := s.reg.Gather()
	if err != nil {
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", lp.GetName(), lp.GetValue())
			}
			fmt.Fprintf(stdErr, "%s%s %g\n", mf.GetName(), labels, m.GetCounter().GetValue())
		}
	}
}

func openProvider(cfg *config.Config) (pr.Provider, error) {
	switch cfg.Store.Backend {
	case config.BackendRedis:
		return redis.Dial(redis.DialConfig{
			Host:     cfg.Store.Host,
			Port:     cfg.Store.Port,
			Timeout:  cfg.Store.Timeout.DurationValue(),
			Password: cfg.Store.Password,
			DB:       cfg.Store.DB,
		}), nil
	case config.BackendBigCache:
		return bigcache.New(bigcache.Config{
			LifeWindow:         cfg.Memory.LifeWindow.DurationValue(),
			MaxEntrySize:       cfg.Memory.MaxEntrySize,
			HardMaxCacheSizeMB: cfg.Memory.MaxSizeMB,
		})
	case config.BackendRistretto:
		return ristretto.New(ristretto.Config{
			NumCounters: 1e6,
			MaxCost:     cfg.Memory.MaxCost,
			BufferItems: 64,
			TTL:         cfg.Memory.LifeWindow.DurationValue(),
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
