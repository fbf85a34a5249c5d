package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/daylog/internal/client/client"
	"github.com/dmitrijs2005/daylog/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a user name and password and creates the account on
// the server. The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Register(ctx, userName, password); err != nil {
		return err
	}

	a.printf("Success! You can login now\n")
	return nil
}

// Login authenticates against the server and falls back to the cached
// credentials when the server is unavailable. An online login replays any
// queued changes right away.
func (a *App) Login(ctx context.Context) error {
	def, _ := a.auth.CachedUsername(ctx)
	userName, err := GetWithDefault(a.reader, "Enter user name", def, a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.auth.OnlineLogin(ctx, userName, password)
	switch {
	case err == nil:
		a.session.authenticated.Store(true)
		a.logger.Info(ctx, "online login", "user", userName)
	case errors.Is(err, client.ErrUnavailable):
		a.printf("Server unavailable, trying offline login...\n")
		if err := a.auth.OfflineLogin(ctx, userName, password); err != nil {
			a.logger.Warn(ctx, "offline login failed", "user", userName, "error", err)
			return fmt.Errorf("offline login unsuccessful: %w", err)
		}
		a.session.authenticated.Store(false)
		a.logger.Info(ctx, "offline login", "user", userName)
	default:
		a.logger.Warn(ctx, "login failed", "user", userName, "error", err)
		return fmt.Errorf("login unsuccessful: %w", err)
	}

	a.userName = userName
	a.loggedIn.Store(true)
	a.printf("Logged in as %s (%s)\n", userName, a.mode())

	if a.session.IsOnline() {
		a.reconcilePending(ctx)
	}
	return nil
}

// Logout forgets the cached credentials and the session tokens. Local
// records and queued changes stay for the next login.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.ClearOfflineData(ctx); err != nil {
		return err
	}
	a.session.authenticated.Store(false)
	a.loggedIn.Store(false)
	a.userName = ""
	a.printf("Logged out\n")
	return nil
}
