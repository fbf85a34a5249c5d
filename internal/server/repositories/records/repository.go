// Package records stores log records per user. Every query is scoped by the
// owner, so one user can never read or change another user's rows.
package records

import (
	"context"

	"github.com/dmitrijs2005/daylog/internal/server/models"
	"github.com/dmitrijs2005/daylog/internal/timex"
)

type Repository interface {
	// List returns all records of userID ordered by id.
	List(ctx context.Context, userID string) ([]models.Record, error)
	ListByDate(ctx context.Context, userID string, date timex.Date) ([]models.Record, error)
	// Create inserts r and fills in ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, r *models.Record) (*models.Record, error)
	// Update replaces the fields of the record r.ID owned by r.UserID and
	// bumps UpdatedAt. A missing record yields common.ErrorNotFound.
	Update(ctx context.Context, r *models.Record) (*models.Record, error)
	// Delete yields common.ErrorNotFound when nothing was deleted.
	Delete(ctx context.Context, userID string, id int64) error
}
