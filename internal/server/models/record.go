package models

import (
	"time"

	"github.com/dmitrijs2005/daylog/internal/timex"
)

// Record is one log entry owned by UserID. ID, CreatedAt and UpdatedAt are
// assigned by the database.
type Record struct {
	ID         int64
	UserID     string
	OccurredOn timex.Date
	LoggedAt   time.Time
	ScaleValue int
	Count      int
	Note       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
