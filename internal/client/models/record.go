// Package models defines the client-side data model of daylog: log records
// as they are kept locally and the queued intents that replay local changes
// against the server.
package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/daylog/internal/common"
	"github.com/dmitrijs2005/daylog/internal/timex"
)

// NoServerID marks a record the server has not assigned an id to yet.
const NoServerID int64 = -1

// ErrInvalidRecord is returned by Fields.Validate.
var ErrInvalidRecord = errors.New("invalid record")

// Fields is the user-editable part of a record. It is also the payload sent
// to the server on create and update.
type Fields struct {
	OccurredOn timex.Date `json:"occurred_on"`
	LoggedAt   time.Time  `json:"logged_at"`
	ScaleValue int        `json:"scale_value"`
	Count      int        `json:"count"`
	Note       string     `json:"note,omitempty"`
}

// Validate checks the field bounds shared with the server.
func (f Fields) Validate() error {
	if f.OccurredOn.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRecord)
	}
	if f.ScaleValue < common.MinScaleValue || f.ScaleValue > common.MaxScaleValue {
		return fmt.Errorf("%w: scale value %d is outside %d..%d",
			ErrInvalidRecord, f.ScaleValue, common.MinScaleValue, common.MaxScaleValue)
	}
	if f.Count < common.MinCount {
		return fmt.Errorf("%w: count must be at least %d", ErrInvalidRecord, common.MinCount)
	}
	return nil
}

// Record is one log entry as known to this client.
//
// ClientID is generated locally and never changes. ServerID is NoServerID
// until the record has been created on the server.
type Record struct {
	ServerID int64  `json:"server_id"`
	ClientID string `json:"client_id"`
	Fields
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Synced reports whether the server has assigned an id to r.
func (r Record) Synced() bool {
	return r.ServerID > 0
}

// Pending is the negation of Synced.
func (r Record) Pending() bool {
	return !r.Synced()
}
