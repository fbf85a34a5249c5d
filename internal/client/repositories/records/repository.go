package records

import (
	"context"

	"github.com/dmitrijs2005/daylog/internal/client/models"
	"github.com/dmitrijs2005/daylog/internal/timex"
)

// Repository is the local record store contract used by the mutation and
// sync services.
type Repository interface {
	// List returns every record in stored order.
	List(ctx context.Context) ([]models.Record, error)
	// GetByDate returns the records logged for date (possibly none).
	GetByDate(ctx context.Context, date timex.Date) ([]models.Record, error)
	// GetByClientID returns common.ErrorNotFound when no record matches.
	GetByClientID(ctx context.Context, clientID string) (*models.Record, error)
	// Upsert replaces the record with the same ClientID or appends it.
	Upsert(ctx context.Context, record models.Record) error
	// RemoveByClientID deletes the record if present.
	RemoveByClientID(ctx context.Context, clientID string) error
	// ReplaceAll stores exactly the given set.
	ReplaceAll(ctx context.Context, records []models.Record) error
}
