package client

import (
	"context"

	"github.com/dmitrijs2005/daylog/internal/client/models"
	"github.com/dmitrijs2005/daylog/internal/timex"
)

// RecordsClient is the remote record store consumed by the mutation and
// sync services. Returned records carry the server id and server
// timestamps; ClientID is left empty for the caller to assign.
type RecordsClient interface {
	ListRecords(ctx context.Context) ([]models.Record, error)
	GetRecordsByDate(ctx context.Context, date timex.Date) ([]models.Record, error)
	CreateRecord(ctx context.Context, fields models.Fields) (*models.Record, error)
	UpdateRecord(ctx context.Context, serverID int64, fields models.Fields) (*models.Record, error)
	DeleteRecord(ctx context.Context, serverID int64) error
}

// Client is the full server API used by the CLI.
type Client interface {
	RecordsClient
	Close() error
	Register(ctx context.Context, username string, salt []byte, key []byte) error
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, key []byte) error
	Logout()
	Ping(ctx context.Context) error
}
