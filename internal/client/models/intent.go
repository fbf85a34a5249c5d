package models

import "time"

// IntentKind is the mutation an Intent replays.
type IntentKind string

const (
	IntentCreate IntentKind = "create"
	IntentUpdate IntentKind = "update"
	IntentDelete IntentKind = "delete"
)

// IntentPayload carries what is needed to replay an intent. Create and
// Update carry Fields; Update and Delete carry the ServerID captured when
// the intent was queued.
type IntentPayload struct {
	ServerID int64   `json:"server_id,omitempty"`
	Fields   *Fields `json:"fields,omitempty"`
}

// Intent is a mutation made while offline and awaiting replay.
type Intent struct {
	ID         string        `json:"id"`
	Kind       IntentKind    `json:"kind"`
	ClientID   string        `json:"client_id"`
	Payload    IntentPayload `json:"payload"`
	EnqueuedAt time.Time     `json:"enqueued_at"`
}
