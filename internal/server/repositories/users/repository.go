// Package users stores accounts: the user name with the salt and verifier
// the client derived from the password.
package users

import (
	"context"

	"github.com/dmitrijs2005/daylog/internal/server/models"
)

type Repository interface {
	// Create inserts user and sets its ID. A taken user name yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
