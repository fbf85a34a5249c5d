package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/daylog/internal/client/client"
	"github.com/dmitrijs2005/daylog/internal/client/models"
	"github.com/dmitrijs2005/daylog/internal/dbx"
	"github.com/dmitrijs2005/daylog/internal/logging"
	"github.com/google/uuid"
)

// ReplayFailure is an intent that could not be replayed and stays queued.
type ReplayFailure struct {
	IntentID string
	Kind     models.IntentKind
	ClientID string
	Err      error
}

func (f ReplayFailure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Kind, f.ClientID, f.Err)
}

func (f ReplayFailure) Unwrap() error {
	return f.Err
}

// SyncSummary reports the outcome of one reconciliation.
type SyncSummary struct {
	// Succeeded counts intents accepted by the server.
	Succeeded int
	// Retained is the length of the queue left for the next attempt.
	Retained int
	// Dropped counts intents discarded because they can no longer apply,
	// e.g. an update of a record the server no longer has.
	Dropped int
	// Conflicts counts replayed updates and deletes of records the server
	// changed after the intent was queued. The local change wins.
	Conflicts int
	// Records is the size of the local store after the merge.
	Records  int
	Failures []ReplayFailure
}

func (s SyncSummary) String() string {
	return fmt.Sprintf("%d replayed, %d retained, %d dropped, %d records", s.Succeeded, s.Retained, s.Dropped, s.Records)
}

type replayOutcome int

const (
	replayed replayOutcome = iota
	dropped
	failed
)

var clientIDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("daylog:record"))

// DeterministicClientID is the client id given to a server record this
// client has never seen. Every client derives the same id.
func DeterministicClientID(serverID int64) string {
	return uuid.NewSHA1(clientIDNamespace, []byte(strconv.FormatInt(serverID, 10))).String()
}

// SyncService replays the intent queue against the server and merges the
// server state back into the local store.
type SyncService struct {
	store   Storage
	remote  client.RecordsClient
	lock    sync.Locker
	events  *Notifier
	logger  logging.Logger
	running atomic.Bool
}

func NewSyncService(store Storage, remote client.RecordsClient, lock sync.Locker, events *Notifier, l logging.Logger) *SyncService {
	return &SyncService{
		store:  store,
		remote: remote,
		lock:   lock,
		events: events,
		logger: l.With("module", "sync"),
	}
}

// ReconcileIfPending runs Reconcile when the queue is non-empty. It returns
// a nil summary when there was nothing to replay.
func (s *SyncService) ReconcileIfPending(ctx context.Context) (*SyncSummary, error) {
	queue, err := s.store.Intents(s.store.DB()).List(ctx)
	if err != nil {
		return nil, err
	}
	if len(queue) == 0 {
		return nil, nil
	}
	return s.Reconcile(ctx)
}

// Reconcile drains the intent queue in FIFO order and merges the final
// server state into the local store.
//
// A failing intent is retained and does not stop the drain. Only a failed
// listing is fatal: a failed baseline leaves everything untouched, while a
// failed final listing still commits the drain (ids assigned to replayed
// creates and the retained queue) but skips the merge, so nothing is
// replayed twice.
func (s *SyncService) Reconcile(ctx context.Context) (*SyncSummary, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrSyncInProgress
	}
	defer s.running.Store(false)

	s.lock.Lock()
	summary, err := s.reconcile(ctx)
	s.lock.Unlock()

	if summary != nil {
		s.events.publish(Change{Kind: ChangeReconciled})
	}
	return summary, err
}

func (s *SyncService) reconcile(ctx context.Context) (*SyncSummary, error) {
	baseline, err := s.remote.ListRecords(ctx)
	if err != nil {
		s.logger.Warn(ctx, "baseline fetch failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	queue, err := s.store.Intents(s.store.DB()).List(ctx)
	if err != nil {
		return nil, err
	}
	local, err := s.store.Records(s.store.DB()).List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &SyncSummary{}
	d := newDrain(baseline, local)
	retained := make([]models.Intent, 0, len(queue))

	for _, in := range queue {
		outcome, err := s.replay(ctx, d, in, summary)
		switch outcome {
		case replayed:
			summary.Succeeded++
		case dropped:
			summary.Dropped++
			s.logger.Info(ctx, "intent dropped", "intent_id", in.ID, "kind", in.Kind, "client_id", in.ClientID, "reason", err)
		case failed:
			retained = append(retained, in)
			summary.Failures = append(summary.Failures, ReplayFailure{IntentID: in.ID, Kind: in.Kind, ClientID: in.ClientID, Err: err})
			s.logger.Warn(ctx, "intent replay failed", "intent_id", in.ID, "kind", in.Kind, "client_id", in.ClientID, "error", err)
		}
	}

	final, err := s.remote.ListRecords(ctx)
	if err != nil {
		s.logger.Warn(ctx, "final fetch failed, merge skipped", "error", err)
		stamped := d.stampCreated(local)
		if perr := s.persist(ctx, stamped, retained); perr != nil {
			return nil, perr
		}
		summary.Retained = len(retained)
		summary.Records = len(stamped)
		return summary, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	merged, queueOut, pruned := s.merge(ctx, d.stampCreated(local), final, retained)
	summary.Dropped += pruned
	if err := s.persist(ctx, merged, queueOut); err != nil {
		return nil, err
	}
	summary.Retained = len(queueOut)
	summary.Records = len(merged)

	s.logger.Info(ctx, "reconciliation finished",
		"succeeded", summary.Succeeded, "retained", summary.Retained,
		"dropped", summary.Dropped, "conflicts", summary.Conflicts, "records", summary.Records)
	return summary, nil
}

func (s *SyncService) persist(ctx context.Context, recs []models.Record, queue []models.Intent) error {
	return s.store.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.store.Records(tx).ReplaceAll(ctx, recs); err != nil {
			return err
		}
		return s.store.Intents(tx).ReplaceAll(ctx, queue)
	})
}

// drain is the state shared by the replay of one queue.
type drain struct {
	baseline map[int64]models.Record
	local    map[string]models.Record
	created  map[string]int64
}

func newDrain(baseline, local []models.Record) *drain {
	d := &drain{
		baseline: make(map[int64]models.Record, len(baseline)),
		local:    make(map[string]models.Record, len(local)),
		created:  make(map[string]int64),
	}
	for _, r := range baseline {
		d.baseline[r.ServerID] = r
	}
	for _, r := range local {
		d.local[r.ClientID] = r
	}
	return d
}

// serverID resolves the server id an update or delete targets.
func (d *drain) serverID(in models.Intent) int64 {
	if in.Payload.ServerID > 0 {
		return in.Payload.ServerID
	}
	if id, ok := d.created[in.ClientID]; ok {
		return id
	}
	if r, ok := d.local[in.ClientID]; ok && r.Synced() {
		return r.ServerID
	}
	return models.NoServerID
}

// stampCreated returns local with server ids of replayed creates applied.
func (d *drain) stampCreated(local []models.Record) []models.Record {
	out := make([]models.Record, len(local))
	copy(out, local)
	for i := range out {
		if id, ok := d.created[out[i].ClientID]; ok {
			out[i].ServerID = id
		}
	}
	return out
}

func (s *SyncService) replay(ctx context.Context, d *drain, in models.Intent, summary *SyncSummary) (replayOutcome, error) {
	switch in.Kind {
	case models.IntentCreate:
		if in.Payload.Fields == nil {
			return dropped, errors.New("create without fields")
		}
		rec, err := s.remote.CreateRecord(ctx, *in.Payload.Fields)
		if err != nil {
			return failed, err
		}
		d.created[in.ClientID] = rec.ServerID
		return replayed, nil

	case models.IntentUpdate:
		id := d.serverID(in)
		if id <= 0 {
			return dropped, errors.New("update target has no server id")
		}
		if in.Payload.Fields == nil {
			return dropped, errors.New("update without fields")
		}
		if s.conflicts(ctx, d, id, in) {
			summary.Conflicts++
		}
		if _, err := s.remote.UpdateRecord(ctx, id, *in.Payload.Fields); err != nil {
			if errors.Is(err, client.ErrNotFound) {
				return dropped, err
			}
			return failed, err
		}
		return replayed, nil

	case models.IntentDelete:
		id := d.serverID(in)
		if id <= 0 {
			return dropped, errors.New("delete target has no server id")
		}
		if s.conflicts(ctx, d, id, in) {
			summary.Conflicts++
		}
		if err := s.remote.DeleteRecord(ctx, id); err != nil && !errors.Is(err, client.ErrNotFound) {
			return failed, err
		}
		return replayed, nil
	}

	return dropped, fmt.Errorf("unknown intent kind %q", in.Kind)
}

// conflicts reports whether the baseline shows a server-side change made
// after the intent was queued.
func (s *SyncService) conflicts(ctx context.Context, d *drain, serverID int64, in models.Intent) bool {
	r, ok := d.baseline[serverID]
	if !ok || !r.UpdatedAt.After(in.EnqueuedAt) {
		return false
	}
	s.logger.Warn(ctx, "server changed record after it was edited offline, local change wins",
		"client_id", in.ClientID, "server_id", serverID, "kind", in.Kind)
	return true
}

// merge builds the new local store from the final server listing.
//
// Server records keep the client id of the local record with the same
// server id, or get a deterministic one. Records with a retained delete are
// left out; records with a retained update keep their local fields. Pending
// records stay as they are, and one without a queued create gets a fresh
// create so it is not lost. Retained updates and deletes of records the
// server no longer has are pruned; the count of pruned intents is returned.
func (s *SyncService) merge(ctx context.Context, local, final []models.Record, queue []models.Intent) ([]models.Record, []models.Intent, int) {
	pendingDelete := make(map[int64]bool)
	pendingUpdate := make(map[string]bool)
	pendingCreate := make(map[string]bool)
	for _, in := range queue {
		switch in.Kind {
		case models.IntentDelete:
			pendingDelete[in.Payload.ServerID] = true
		case models.IntentUpdate:
			pendingUpdate[in.ClientID] = true
		case models.IntentCreate:
			pendingCreate[in.ClientID] = true
		}
	}

	byServer := make(map[int64]models.Record, len(local))
	for _, r := range local {
		if r.Synced() {
			byServer[r.ServerID] = r
		}
	}

	onServer := make(map[int64]bool, len(final))
	merged := make([]models.Record, 0, len(final)+len(local))
	for _, sr := range final {
		onServer[sr.ServerID] = true
		if pendingDelete[sr.ServerID] {
			continue
		}
		lr, known := byServer[sr.ServerID]
		switch {
		case known && pendingUpdate[lr.ClientID]:
			merged = append(merged, lr)
		case known:
			sr.ClientID = lr.ClientID
			merged = append(merged, sr)
		default:
			sr.ClientID = DeterministicClientID(sr.ServerID)
			merged = append(merged, sr)
		}
	}

	out := make([]models.Intent, 0, len(queue))
	pruned := 0
	for _, in := range queue {
		if in.Kind != models.IntentCreate && in.Payload.ServerID > 0 && !onServer[in.Payload.ServerID] {
			pruned++
			continue
		}
		out = append(out, in)
	}

	for _, r := range local {
		if r.Synced() {
			continue
		}
		merged = append(merged, r)
		if pendingCreate[r.ClientID] {
			continue
		}
		payload := r.Fields
		out = append(out, models.Intent{
			ID:         uuid.NewString(),
			Kind:       models.IntentCreate,
			ClientID:   r.ClientID,
			Payload:    models.IntentPayload{Fields: &payload},
			EnqueuedAt: systemClock(),
		})
		s.logger.Warn(ctx, "pending record had no queued create, re-queued", "client_id", r.ClientID)
	}

	sortRecords(merged)
	return merged, out, pruned
}
