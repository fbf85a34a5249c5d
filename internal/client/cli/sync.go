package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/daylog/internal/client/services"
)

// ErrNotConnected is returned by Sync when the server cannot be used.
var ErrNotConnected = errors.New("server not reachable or session offline")

// Sync replays queued changes and refreshes the local store from the server.
func (a *App) Sync(ctx context.Context) error {
	if !a.session.IsOnline() {
		return ErrNotConnected
	}
	summary, err := a.sync.Reconcile(ctx)
	if summary != nil {
		a.printSummary(summary)
	}
	if errors.Is(err, services.ErrFetch) {
		return fmt.Errorf("queued changes were sent but the refresh failed: %w", err)
	}
	return err
}

// Status prints the user, the connection mode and the local store size.
func (a *App) Status(ctx context.Context) error {
	user := a.userName
	if user == "" {
		user = "-"
	}
	a.printf("user:     %s\n", user)
	a.printf("mode:     %s\n", a.mode())
	a.printf("server:   %s\n", a.config.ServerEndpointAddr)

	if !a.loggedIn.Load() {
		return nil
	}
	recs, err := a.records.List(ctx)
	if err != nil {
		return err
	}
	queue, err := a.records.Pending(ctx)
	if err != nil {
		return err
	}
	a.printf("records:  %d\n", len(recs))
	a.printf("pending:  %d\n", len(queue))
	return nil
}
