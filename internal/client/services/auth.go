// Package services contains the application services of the daylog client:
// authentication with an offline fallback, the record mutation facade, the
// reconciliation engine and bulk import/export.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/daylog/internal/client/client"
	"github.com/dmitrijs2005/daylog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/daylog/internal/common"
	"github.com/dmitrijs2005/daylog/internal/cryptox"
	"github.com/dmitrijs2005/daylog/internal/dbx"
)

// Metadata keys of the cached login.
const (
	usernameKey = "username"
	saltKey     = "salt"
	verifierKey = "verifier"
	// ownerKey names the user the local records and queue belong to. It
	// survives logout.
	ownerKey = "records_owner"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - OnlineLogin: authenticate against the server and cache offline auth data.
//   - OfflineLogin: verify credentials against the locally cached data.
//   - Register: create a new user on the server.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
//   - ClearOfflineData: forget the cached login, keeping records and queue
//     for the same user's next login.
type AuthService interface {
	OfflineLogin(ctx context.Context, username string, password []byte) error
	OnlineLogin(ctx context.Context, username string, password []byte) error
	Register(ctx context.Context, username string, password []byte) error
	CachedUsername(ctx context.Context) (string, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	ClearOfflineData(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  Storage
}

func NewAuthService(client client.Client, store Storage) AuthService {
	return &authService{client: client, store: store}
}

func (a *authService) metadataRepo() metadata.Repository {
	return a.store.Metadata(a.store.DB())
}

// OfflineLogin derives the verifier from password and the cached salt and
// compares it with the cached verifier. Missing cache data yields
// ErrLocalDataNotAvailable; a mismatch yields client.ErrUnauthorized.
func (a *authService) OfflineLogin(ctx context.Context, username string, password []byte) error {
	repo := a.metadataRepo()

	savedUsername, err := repo.Get(ctx, usernameKey)
	if err != nil {
		return err
	}
	if savedUsername == nil {
		return ErrLocalDataNotAvailable
	}
	if string(savedUsername) != username {
		return client.ErrUnauthorized
	}

	salt, err := repo.Get(ctx, saltKey)
	if err != nil {
		return err
	}
	verifier, err := repo.Get(ctx, verifierKey)
	if err != nil {
		return err
	}
	if len(salt) == 0 || len(verifier) == 0 {
		return ErrLocalDataNotAvailable
	}

	if !cryptox.EqualVerifiers(verifier, cryptox.VerifierFor(password, salt)) {
		return client.ErrUnauthorized
	}
	return nil
}

// OnlineLogin authenticates against the server and caches username, salt
// and verifier for offline use. Logging in as a different user than the
// owner of the local data wipes the local records and queue first.
func (a *authService) OnlineLogin(ctx context.Context, username string, password []byte) error {
	salt, err := a.client.GetSalt(ctx, username)
	if err != nil {
		return fmt.Errorf("get salt error: %w", err)
	}

	verifier := cryptox.VerifierFor(password, salt)

	if err := a.client.Login(ctx, username, verifier); err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	if err := a.saveOfflineData(ctx, username, salt, verifier); err != nil {
		return fmt.Errorf("offline data saving error: %w", err)
	}
	return nil
}

func (a *authService) saveOfflineData(ctx context.Context, username string, salt []byte, verifier []byte) error {
	return a.store.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.store.Metadata(tx)

		owner, err := repo.Get(ctx, ownerKey)
		if err != nil {
			return err
		}
		if owner == nil {
			if owner, err = repo.Get(ctx, usernameKey); err != nil {
				return err
			}
		}
		if owner != nil && string(owner) != username {
			if err := repo.Clear(ctx); err != nil {
				return err
			}
		}

		if err := repo.Set(ctx, ownerKey, []byte(username)); err != nil {
			return err
		}
		if err := repo.Set(ctx, usernameKey, []byte(username)); err != nil {
			return err
		}
		if err := repo.Set(ctx, saltKey, salt); err != nil {
			return err
		}
		return repo.Set(ctx, verifierKey, verifier)
	})
}

// Register creates a new account on the server with a fresh random salt.
func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	salt := common.GenerateRandByteArray(cryptox.SaltSize)
	verifier := cryptox.VerifierFor(password, salt)

	return a.client.Register(ctx, username, salt, verifier)
}

// CachedUsername returns the user of the cached login, or "" when none.
func (a *authService) CachedUsername(ctx context.Context) (string, error) {
	v, err := a.metadataRepo().Get(ctx, usernameKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

// ClearOfflineData forgets the cached login and the session tokens. The
// owner marker stays, so a later login by another user wipes the records
// and queue instead of replaying them under the wrong account.
func (a *authService) ClearOfflineData(ctx context.Context) error {
	a.client.Logout()
	return a.store.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.store.Metadata(tx)
		for _, k := range []string{usernameKey, saltKey, verifierKey} {
			if err := repo.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
}
