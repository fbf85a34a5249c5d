// Package records is the local record store: the full set of records known
// to this client, including ones the server has not seen yet.
//
// # Persistence
//
// The whole set is serialized as one JSON array under the metadata key
// StorageKey and rewritten on every mutating call. The rewrite is a single
// upsert of the blob, so readers observe either the old or the new set.
// Bind the repository to a *sql.Tx (see dbx.DBTX) to commit it together
// with the intent queue.
//
// Records are addressed by ClientID. Several records may share a date;
// GetByDate returns all of them in stored order.
package records
