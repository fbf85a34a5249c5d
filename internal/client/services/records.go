package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/daylog/internal/client/client"
	"github.com/dmitrijs2005/daylog/internal/client/models"
	"github.com/dmitrijs2005/daylog/internal/common"
	"github.com/dmitrijs2005/daylog/internal/dbx"
	"github.com/dmitrijs2005/daylog/internal/logging"
	"github.com/dmitrijs2005/daylog/internal/timex"
	"github.com/google/uuid"
)

// RecordService is the single entry point for record mutations.
//
// Online, a mutation goes straight to the server and the authoritative
// result is stored locally. Offline, the record store and the intent queue
// are updated together in one local transaction. Mutations of a record
// whose create is still queued always take the local path, since the server
// has not seen it yet.
type RecordService struct {
	store   Storage
	remote  client.RecordsClient
	conn    Connectivity
	lock    sync.Locker
	events  *Notifier
	logger  logging.Logger
	now     Clock
	newUUID func() string
}

func NewRecordService(store Storage, remote client.RecordsClient, conn Connectivity, lock sync.Locker, events *Notifier, l logging.Logger) *RecordService {
	return &RecordService{
		store:   store,
		remote:  remote,
		conn:    conn,
		lock:    lock,
		events:  events,
		logger:  l.With("module", "records"),
		now:     systemClock,
		newUUID: uuid.NewString,
	}
}

func (s *RecordService) normalize(f models.Fields) (models.Fields, error) {
	if f.LoggedAt.IsZero() {
		f.LoggedAt = s.now()
	} else {
		f.LoggedAt = f.LoggedAt.UTC().Truncate(time.Microsecond)
	}
	if err := f.Validate(); err != nil {
		return models.Fields{}, err
	}
	return f, nil
}

func (s *RecordService) get(ctx context.Context, clientID string) (*models.Record, error) {
	rec, err := s.store.Records(s.store.DB()).GetByClientID(ctx, clientID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("%w: record %s does not exist", ErrState, clientID)
	}
	return rec, err
}

// Create stores a new record. Offline, the record gets NoServerID and a
// create intent is queued.
func (s *RecordService) Create(ctx context.Context, fields models.Fields) (*models.Record, error) {
	fields, err := s.normalize(fields)
	if err != nil {
		return nil, err
	}

	s.lock.Lock()
	rec, err := s.create(ctx, fields)
	s.lock.Unlock()
	if err != nil {
		return nil, err
	}

	s.events.publish(Change{Kind: ChangeCreated, ClientID: rec.ClientID})
	return rec, nil
}

func (s *RecordService) create(ctx context.Context, fields models.Fields) (*models.Record, error) {
	clientID := s.newUUID()

	if s.conn.IsOnline() {
		rec, err := s.remote.CreateRecord(ctx, fields)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRemote, err)
		}
		rec.ClientID = clientID
		if err := s.store.Records(s.store.DB()).Upsert(ctx, *rec); err != nil {
			return nil, err
		}
		s.logger.Debug(ctx, "record created on server", "client_id", clientID, "server_id", rec.ServerID)
		return rec, nil
	}

	now := s.now()
	rec := models.Record{
		ServerID:  models.NoServerID,
		ClientID:  clientID,
		Fields:    fields,
		CreatedAt: now,
		UpdatedAt: now,
	}
	payload := fields
	intent := models.Intent{
		ID:         s.newUUID(),
		Kind:       models.IntentCreate,
		ClientID:   clientID,
		Payload:    models.IntentPayload{Fields: &payload},
		EnqueuedAt: now,
	}

	err := s.store.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.store.Records(tx).Upsert(ctx, rec); err != nil {
			return err
		}
		return s.store.Intents(tx).Enqueue(ctx, intent)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug(ctx, "record created offline", "client_id", clientID)
	return &rec, nil
}

// Update replaces the editable fields of a record as a whole.
func (s *RecordService) Update(ctx context.Context, clientID string, fields models.Fields) (*models.Record, error) {
	fields, err := s.normalize(fields)
	if err != nil {
		return nil, err
	}

	s.lock.Lock()
	rec, err := s.update(ctx, clientID, fields)
	s.lock.Unlock()
	if err != nil {
		return nil, err
	}

	s.events.publish(Change{Kind: ChangeUpdated, ClientID: clientID})
	return rec, nil
}

func (s *RecordService) update(ctx context.Context, clientID string, fields models.Fields) (*models.Record, error) {
	rec, err := s.get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	queue, err := s.store.Intents(s.store.DB()).List(ctx)
	if err != nil {
		return nil, err
	}

	if i, ok := hasQueuedCreate(queue, clientID); ok {
		payload := fields
		queue[i].Payload.Fields = &payload
		rec.Fields = fields
		rec.UpdatedAt = s.now()
		s.logger.Debug(ctx, "update folded into queued create", "client_id", clientID)
		return rec, s.commit(ctx, rec, queue)
	}

	if !rec.Synced() {
		return nil, fmt.Errorf("%w: record %s has no server id and no queued create", ErrState, clientID)
	}

	if s.conn.IsOnline() {
		updated, err := s.remote.UpdateRecord(ctx, rec.ServerID, fields)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRemote, err)
		}
		updated.ClientID = clientID
		return updated, s.commit(ctx, updated, withoutIntents(queue, clientID, models.IntentUpdate))
	}

	now := s.now()
	payload := fields
	queue = append(withoutIntents(queue, clientID, models.IntentUpdate), models.Intent{
		ID:         s.newUUID(),
		Kind:       models.IntentUpdate,
		ClientID:   clientID,
		Payload:    models.IntentPayload{ServerID: rec.ServerID, Fields: &payload},
		EnqueuedAt: now,
	})
	rec.Fields = fields
	rec.UpdatedAt = now
	s.logger.Debug(ctx, "update queued", "client_id", clientID, "server_id", rec.ServerID)
	return rec, s.commit(ctx, rec, queue)
}

// commit stores rec and the rewritten queue in one transaction.
func (s *RecordService) commit(ctx context.Context, rec *models.Record, queue []models.Intent) error {
	return s.store.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.store.Records(tx).Upsert(ctx, *rec); err != nil {
			return err
		}
		return s.store.Intents(tx).ReplaceAll(ctx, queue)
	})
}

// Delete removes a record. Deleting a record whose create is still queued
// cancels the create and leaves no trace in either store.
func (s *RecordService) Delete(ctx context.Context, clientID string) error {
	s.lock.Lock()
	err := s.delete(ctx, clientID)
	s.lock.Unlock()
	if err != nil {
		return err
	}

	s.events.publish(Change{Kind: ChangeDeleted, ClientID: clientID})
	return nil
}

func (s *RecordService) delete(ctx context.Context, clientID string) error {
	rec, err := s.get(ctx, clientID)
	if err != nil {
		return err
	}
	queue, err := s.store.Intents(s.store.DB()).List(ctx)
	if err != nil {
		return err
	}

	if _, ok := hasQueuedCreate(queue, clientID); ok {
		s.logger.Debug(ctx, "queued create cancelled", "client_id", clientID)
		return s.remove(ctx, clientID, withoutIntents(queue, clientID))
	}

	if !rec.Synced() {
		return fmt.Errorf("%w: record %s has no server id and no queued create", ErrState, clientID)
	}

	if s.conn.IsOnline() {
		err := s.remote.DeleteRecord(ctx, rec.ServerID)
		if err != nil && !errors.Is(err, client.ErrNotFound) {
			return fmt.Errorf("%w: %w", ErrRemote, err)
		}
		return s.remove(ctx, clientID, withoutIntents(queue, clientID, models.IntentUpdate))
	}

	queue = append(withoutIntents(queue, clientID, models.IntentUpdate), models.Intent{
		ID:         s.newUUID(),
		Kind:       models.IntentDelete,
		ClientID:   clientID,
		Payload:    models.IntentPayload{ServerID: rec.ServerID},
		EnqueuedAt: s.now(),
	})
	s.logger.Debug(ctx, "delete queued", "client_id", clientID, "server_id", rec.ServerID)
	return s.remove(ctx, clientID, queue)
}

func (s *RecordService) remove(ctx context.Context, clientID string, queue []models.Intent) error {
	return s.store.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.store.Records(tx).RemoveByClientID(ctx, clientID); err != nil {
			return err
		}
		return s.store.Intents(tx).ReplaceAll(ctx, queue)
	})
}

// Get returns the record with clientID or an ErrState error.
func (s *RecordService) Get(ctx context.Context, clientID string) (*models.Record, error) {
	return s.get(ctx, clientID)
}

// List returns every local record ordered by day and creation time.
func (s *RecordService) List(ctx context.Context) ([]models.Record, error) {
	recs, err := s.store.Records(s.store.DB()).List(ctx)
	if err != nil {
		return nil, err
	}
	sortRecords(recs)
	return recs, nil
}

func (s *RecordService) ListByDate(ctx context.Context, date timex.Date) ([]models.Record, error) {
	recs, err := s.store.Records(s.store.DB()).GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	sortRecords(recs)
	return recs, nil
}

// ListMonth groups the records of the month containing day by day of month.
func (s *RecordService) ListMonth(ctx context.Context, day timex.Date) (map[int][]models.Record, error) {
	recs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	first := day.FirstOfMonth()
	out := make(map[int][]models.Record)
	for _, r := range recs {
		if r.OccurredOn.Year == first.Year && r.OccurredOn.Month == first.Month {
			out[r.OccurredOn.Day] = append(out[r.OccurredOn.Day], r)
		}
	}
	return out, nil
}

// Pending returns the queued intents in replay order.
func (s *RecordService) Pending(ctx context.Context) ([]models.Intent, error) {
	return s.store.Intents(s.store.DB()).List(ctx)
}

func sortRecords(recs []models.Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.OccurredOn != b.OccurredOn {
			return a.OccurredOn.Before(b.OccurredOn)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ClientID < b.ClientID
	})
}
