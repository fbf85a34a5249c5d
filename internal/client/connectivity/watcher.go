// Package connectivity tracks whether the daylog server is reachable.
//
// A Watcher pings the server on a fixed interval and notifies subscribers
// only when the reachability flips; steady state is never re-announced.
package connectivity

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/daylog/internal/logging"
)

const DefaultPingTimeout = 3 * time.Second

// Pinger is the probe the watcher runs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// EdgeFunc receives the new state after a transition.
type EdgeFunc func(ctx context.Context, online bool)

type Watcher struct {
	pinger      Pinger
	interval    time.Duration
	pingTimeout time.Duration
	logger      logging.Logger

	online atomic.Bool

	mu   sync.Mutex
	subs []EdgeFunc
}

// NewWatcher returns a watcher that starts in the offline state.
func NewWatcher(p Pinger, interval time.Duration, l logging.Logger) *Watcher {
	return &Watcher{
		pinger:      p,
		interval:    interval,
		pingTimeout: DefaultPingTimeout,
		logger:      l.With("module", "connectivity"),
	}
}

func (w *Watcher) IsOnline() bool {
	return w.online.Load()
}

// Subscribe registers fn for future edges. Callbacks run on the watcher's
// goroutine, one at a time, in subscription order.
func (w *Watcher) Subscribe(fn EdgeFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.subs = append(w.subs, fn)
}

// Check probes the server once, updates the state and publishes an edge if
// it changed. It reports the new state.
func (w *Watcher) Check(ctx context.Context) bool {
	pctx, cancel := context.WithTimeout(ctx, w.pingTimeout)
	err := w.pinger.Ping(pctx)
	cancel()

	online := err == nil
	if w.online.Swap(online) == online {
		return online
	}

	if online {
		w.logger.Info(ctx, "server is reachable, switched to online mode")
	} else {
		w.logger.Warn(ctx, "server is unreachable, switched to offline mode", "error", err)
	}

	w.mu.Lock()
	subs := append([]EdgeFunc(nil), w.subs...)
	w.mu.Unlock()

	for _, fn := range subs {
		fn(ctx, online)
	}
	return online
}

// Run checks immediately and then on every tick until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	w.Check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}
