package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/daylog/internal/client/repositories/intents"
	"github.com/dmitrijs2005/daylog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/daylog/internal/client/repositories/records"
	"github.com/dmitrijs2005/daylog/internal/dbx"
)

// Storage vends local repositories bound to the database or to a
// transaction. It is satisfied by *repomanager.Manager.
type Storage interface {
	DB() *sql.DB
	Metadata(db dbx.DBTX) metadata.Repository
	Records(db dbx.DBTX) records.Repository
	Intents(db dbx.DBTX) intents.Repository
	WithTx(ctx context.Context, fn dbx.TxFunc) error
}

// Connectivity reports whether the server is currently reachable.
type Connectivity interface {
	IsOnline() bool
}

// Clock returns the current time as stored locally: UTC, truncated to
// microseconds so values survive JSON and Postgres round trips unchanged.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
