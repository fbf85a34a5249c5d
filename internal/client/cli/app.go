package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/daylog/internal/client/client"
	"github.com/dmitrijs2005/daylog/internal/client/config"
	"github.com/dmitrijs2005/daylog/internal/client/connectivity"
	"github.com/dmitrijs2005/daylog/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/daylog/internal/client/services"
	"github.com/dmitrijs2005/daylog/internal/client/transfer"
	"github.com/dmitrijs2005/daylog/internal/filex"
	"github.com/dmitrijs2005/daylog/internal/logging"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

// onlineChecker is the part of connectivity.Watcher the App reads.
type onlineChecker interface {
	IsOnline() bool
}

// session gates remote calls: the server is only used when it is reachable
// and this process holds tokens from an online login.
type session struct {
	watcher       onlineChecker
	authenticated atomic.Bool
}

func (s *session) IsOnline() bool {
	return s.authenticated.Load() && s.watcher.IsOnline()
}

type App struct {
	config   *config.Config
	auth     services.AuthService
	records  *services.RecordService
	sync     *services.SyncService
	transfer *services.TransferService
	watcher  *connectivity.Watcher
	session  *session
	logger   logging.Logger

	// newS3Sink is a seam for tests; the sink is built on first use.
	newS3Sink func(ctx context.Context) (transfer.Sink, error)

	userName string
	loggedIn atomic.Bool
	reader   *bufio.Reader

	outMu sync.Mutex
	out   io.Writer

	closers []io.Closer
}

// NewApp wires local storage, the gRPC client, the connectivity watcher and
// the services around one shared lock.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, logCloser, err := logging.NewFileLogger(logging.FileConfig{Dir: c.LogDir, Debug: c.Debug})
	if err != nil {
		return nil, fmt.Errorf("error initializing log: %w", err)
	}

	dbPath, err := filex.EnsureParentDir(c.DatabasePath, 0o700)
	if err != nil {
		_ = logCloser.Close()
		return nil, err
	}
	store, err := repomanager.Open(ctx, dbPath)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewDaylogClient(c.ServerEndpointAddr)
	if err != nil {
		_ = store.Close()
		_ = logCloser.Close()
		return nil, err
	}

	watcher := connectivity.NewWatcher(apiClient, c.OnlineCheckInterval, logger)
	sess := &session{watcher: watcher}

	var lock sync.Mutex
	events := services.NewNotifier()
	events.Subscribe(func(ch services.Change) {
		logger.Debug(ctx, "local store changed", "kind", ch.Kind, "client_id", ch.ClientID)
	})

	records := services.NewRecordService(store, apiClient, sess, &lock, events, logger)

	a := &App{
		config:   c,
		auth:     services.NewAuthService(apiClient, store),
		records:  records,
		sync:     services.NewSyncService(store, apiClient, &lock, events, logger),
		transfer: services.NewTransferService(records, logger),
		watcher:  watcher,
		session:  sess,
		logger:   logger.With("module", "cli"),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		closers:  []io.Closer{store, logCloser},
	}
	a.newS3Sink = func(ctx context.Context) (transfer.Sink, error) {
		cfg := transfer.S3Config(c.S3)
		if !cfg.Enabled() {
			return nil, fmt.Errorf("s3 export is not configured")
		}
		return transfer.NewS3Sink(ctx, cfg)
	}
	watcher.Subscribe(a.onConnectivity)

	return a, nil
}

// Run starts the watcher and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.close(ctx)

	go a.watcher.Run(ctx)
	a.Root(ctx)
}

func (a *App) close(ctx context.Context) {
	if err := a.auth.Close(ctx); err != nil {
		a.logger.Warn(ctx, "closing client", "error", err)
	}
	for _, c := range a.closers {
		_ = c.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn.Load()
}

func (a *App) mode() Mode {
	switch {
	case !a.loggedIn.Load():
		return ModeDisabled
	case a.session.IsOnline():
		return ModeOnline
	default:
		return ModeOffline
	}
}

// printf serializes output from the REPL and the watcher goroutine.
func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

// onConnectivity runs on the watcher goroutine for every state change.
func (a *App) onConnectivity(ctx context.Context, online bool) {
	if !online {
		if a.loggedIn.Load() {
			a.printf("\nServer unreachable, working offline\n")
		}
		return
	}
	if !a.loggedIn.Load() {
		return
	}
	if !a.session.authenticated.Load() {
		a.printf("\nServer reachable again, login to synchronize\n")
		return
	}
	a.printf("\nServer reachable again\n")
	a.reconcilePending(ctx)
}

// reconcilePending replays the queue if it is not empty and reports the
// result.
func (a *App) reconcilePending(ctx context.Context) {
	summary, err := a.sync.ReconcileIfPending(ctx)
	if summary != nil {
		a.printSummary(summary)
	}
	if err != nil {
		a.logger.Error(ctx, "background sync failed", "error", err)
		a.printf("Sync failed: %v\n", err)
	}
}

func (a *App) printSummary(s *services.SyncSummary) {
	a.printf("Sync: %s\n", s)
	if s.Conflicts > 0 {
		a.printf("  %d record(s) had changed on the server, local changes were kept\n", s.Conflicts)
	}
	for _, f := range s.Failures {
		a.printf("  retained: %v\n", f)
	}
}
