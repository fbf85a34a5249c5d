package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/daylog/internal/client/client"
	"github.com/dmitrijs2005/daylog/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_OfflineCreateIsReplayedOnce(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	rec, err := fx.records.Create(ctx, fields(5, 4, 1))
	require.NoError(t, err)
	require.Len(t, localRecords(t, fx.store), 1)
	require.Len(t, localQueue(t, fx.store), 1)

	fx.conn.set(true)
	sum, err := fx.sync.Reconcile(ctx)
	require.NoError(t, err)

	require.Len(t, fx.remote.creates, 1)
	assert.Equal(t, fields(5, 4, 1), fx.remote.creates[0])
	assert.Equal(t, 1, sum.Succeeded)
	assert.Equal(t, 0, sum.Retained)
	assert.Empty(t, sum.Failures)

	recs := localRecords(t, fx.store)
	require.Len(t, recs, 1)
	assert.Equal(t, rec.ClientID, recs[0].ClientID)
	assert.Equal(t, int64(101), recs[0].ServerID)
	assert.Empty(t, localQueue(t, fx.store))
}

func TestReconcile_CreateThenDeleteOfflineIsNoOp(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	rec, err := fx.records.Create(ctx, fields(5, 4, 1))
	require.NoError(t, err)
	require.NoError(t, fx.records.Delete(ctx, rec.ClientID))

	assert.Empty(t, localRecords(t, fx.store))
	assert.Empty(t, localQueue(t, fx.store))

	sum, err := fx.sync.ReconcileIfPending(ctx)
	require.NoError(t, err)
	assert.Nil(t, sum)

	sum, err = fx.sync.Reconcile(ctx)
	require.NoError(t, err)
	assert.Zero(t, sum.Succeeded)
	assert.Empty(t, fx.remote.creates)
	assert.Empty(t, fx.remote.deletes)
	assert.Empty(t, localRecords(t, fx.store))
}

func TestReconcile_PartialFailureRetainsOnlyFailedIntent(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	first, err := fx.records.Create(ctx, fields(5, 1, 1))
	require.NoError(t, err)
	second, err := fx.records.Create(ctx, fields(6, 2, 1))
	require.NoError(t, err)
	queued := localQueue(t, fx.store)

	boom := errors.New("network error")
	fx.remote.failOn = func(op string, f *models.Fields, _ int64) error {
		if op == "create" && f.OccurredOn == day(5) {
			return boom
		}
		return nil
	}

	sum, err := fx.sync.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Succeeded)
	assert.Equal(t, 1, sum.Retained)
	require.Len(t, sum.Failures, 1)
	assert.Equal(t, first.ClientID, sum.Failures[0].ClientID)
	assert.ErrorIs(t, sum.Failures[0], boom)

	q := localQueue(t, fx.store)
	require.Len(t, q, 1)
	assert.Equal(t, queued[0], q[0])

	byID := map[string]models.Record{}
	for _, r := range localRecords(t, fx.store) {
		byID[r.ClientID] = r
	}
	require.Len(t, byID, 2)
	assert.Equal(t, models.NoServerID, byID[first.ClientID].ServerID)
	assert.True(t, byID[second.ClientID].Synced())

	fx.remote.failOn = nil
	sum, err = fx.sync.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Succeeded)
	assert.Empty(t, localQueue(t, fx.store))
	for _, r := range localRecords(t, fx.store) {
		assert.True(t, r.Synced())
	}
}

func TestReconcile_EmptyQueueOnlyRefreshesStore(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.conn.set(true)
	mine, err := fx.records.Create(ctx, fields(5, 4, 1))
	require.NoError(t, err)
	gone, err := fx.records.Create(ctx, fields(6, 4, 1))
	require.NoError(t, err)
	fx.conn.set(false)

	other := fx.remote.seed(fields(7, 2, 2))
	fx.remote.drop(gone.ServerID)
	_, err = fx.remote.UpdateRecord(ctx, mine.ServerID, fields(5, 0, 3))
	require.NoError(t, err)

	sum, err := fx.sync.Reconcile(ctx)
	require.NoError(t, err)
	assert.Zero(t, sum.Succeeded)
	assert.Zero(t, sum.Retained)
	assert.Equal(t, 2, sum.Records)
	assert.Empty(t, localQueue(t, fx.store))

	recs := localRecords(t, fx.store)
	require.Len(t, recs, 2)
	assert.Equal(t, mine.ClientID, recs[0].ClientID)
	assert.Equal(t, 3, recs[0].Count, "server fields win")
	assert.Equal(t, other.ServerID, recs[1].ServerID)
	assert.Equal(t, DeterministicClientID(other.ServerID), recs[1].ClientID)
}

func TestReconcile_ReplaysUpdatesAndDeletesInOrder(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.conn.set(true)
	a, err := fx.records.Create(ctx, fields(5, 1, 1))
	require.NoError(t, err)
	b, err := fx.records.Create(ctx, fields(6, 1, 1))
	require.NoError(t, err)
	fx.conn.set(false)

	_, err = fx.records.Update(ctx, a.ClientID, fields(5, 7, 4))
	require.NoError(t, err)
	require.NoError(t, fx.records.Delete(ctx, b.ClientID))
	c, err := fx.records.Create(ctx, fields(7, 3, 1))
	require.NoError(t, err)

	fx.conn.set(true)
	sum, err := fx.sync.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Succeeded)
	assert.Equal(t, []int64{a.ServerID}, fx.remote.updates)
	assert.Equal(t, []int64{b.ServerID}, fx.remote.deletes)

	recs := localRecords(t, fx.store)
	require.Len(t, recs, 2)
	assert.Equal(t, a.ClientID, recs[0].ClientID)
	assert.Equal(t, 7, recs[0].ScaleValue)
	assert.Equal(t, c.ClientID, recs[1].ClientID)
	assert.True(t, recs[1].Synced())
}

func TestReconcile_UpdateOfRecordGoneOnServerIsDropped(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.conn.set(true)
	a, err := fx.records.Create(ctx, fields(5, 1, 1))
	require.NoError(t, err)
	b, err := fx.records.Create(ctx, fields(6, 1, 1))
	require.NoError(t, err)
	fx.conn.set(false)

	_, err = fx.records.Update(ctx, a.ClientID, fields(5, 2, 1))
	require.NoError(t, err)
	require.NoError(t, fx.records.Delete(ctx, b.ClientID))
	fx.remote.drop(a.ServerID)
	fx.remote.drop(b.ServerID)

	sum, err := fx.sync.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Succeeded, "delete of a missing record counts as done")
	assert.Equal(t, 1, sum.Dropped)
	assert.Empty(t, localQueue(t, fx.store))
	assert.Empty(t, localRecords(t, fx.store))
}

func TestReconcile_MergeHonoursRetainedIntents(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.conn.set(true)
	upd, err := fx.records.Create(ctx, fields(5, 1, 1))
	require.NoError(t, err)
	del, err := fx.records.Create(ctx, fields(6, 1, 1))
	require.NoError(t, err)
	fx.conn.set(false)

	_, err = fx.records.Update(ctx, upd.ClientID, fields(5, 6, 6))
	require.NoError(t, err)
	require.NoError(t, fx.records.Delete(ctx, del.ClientID))

	fx.remote.failOn = func(op string, _ *models.Fields, _ int64) error {
		if op == "update" || op == "delete" {
			return client.ErrUnavailable
		}
		return nil
	}

	sum, err := fx.sync.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Retained)
	assert.Len(t, localQueue(t, fx.store), 2)

	recs := localRecords(t, fx.store)
	require.Len(t, recs, 1, "record with a retained delete stays removed")
	assert.Equal(t, upd.ClientID, recs[0].ClientID)
	assert.Equal(t, 6, recs[0].ScaleValue, "pending local edit is kept")
}

func TestReconcile_BaselineFetchFailureLeavesEverythingUntouched(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.records.Create(ctx, fields(5, 4, 1))
	require.NoError(t, err)
	beforeRecs := localRecords(t, fx.store)
	beforeQueue := localQueue(t, fx.store)

	fx.remote.listErrs = []error{client.ErrUnavailable}

	sum, err := fx.sync.Reconcile(ctx)
	require.ErrorIs(t, err, ErrFetch)
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Nil(t, sum)
	assert.Empty(t, fx.remote.creates)
	assert.Equal(t, beforeRecs, localRecords(t, fx.store))
	assert.Equal(t, beforeQueue, localQueue(t, fx.store))
}

func TestReconcile_FinalFetchFailureCommitsDrainWithoutMerge(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	rec, err := fx.records.Create(ctx, fields(5, 4, 1))
	require.NoError(t, err)
	fx.remote.seed(fields(9, 1, 1))

	fx.remote.listErrs = []error{nil, client.ErrUnavailable}

	sum, err := fx.sync.Reconcile(ctx)
	require.ErrorIs(t, err, ErrFetch)
	require.NotNil(t, sum)
	assert.Equal(t, 1, sum.Succeeded)

	recs := localRecords(t, fx.store)
	require.Len(t, recs, 1, "no merge of server-only records")
	assert.Equal(t, rec.ClientID, recs[0].ClientID)
	assert.True(t, recs[0].Synced())
	assert.Empty(t, localQueue(t, fx.store))

	_, err = fx.sync.Reconcile(ctx)
	require.NoError(t, err)
	assert.Len(t, fx.remote.creates, 1, "create is not replayed twice")
	assert.Len(t, localRecords(t, fx.store), 2)
}

func TestReconcile_NotReentrant(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.remote.block = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := fx.sync.Reconcile(ctx)
		done <- err
	}()

	require.Eventually(t, func() bool { return fx.sync.running.Load() }, 2*time.Second, 5*time.Millisecond)

	_, err := fx.sync.Reconcile(ctx)
	require.ErrorIs(t, err, ErrSyncInProgress)

	close(fx.remote.block)
	require.NoError(t, <-done)
}

func TestReconcile_OrphanPendingRecordIsRequeued(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	orphan := models.Record{ServerID: models.NoServerID, ClientID: "orphan", Fields: fields(5, 1, 1)}
	require.NoError(t, fx.store.Records(fx.store.DB()).Upsert(ctx, orphan))

	_, err := fx.sync.Reconcile(ctx)
	require.NoError(t, err)

	recs := localRecords(t, fx.store)
	require.Len(t, recs, 1)
	q := localQueue(t, fx.store)
	require.Len(t, q, 1)
	assert.Equal(t, models.IntentCreate, q[0].Kind)
	assert.Equal(t, "orphan", q[0].ClientID)

	_, err = fx.sync.Reconcile(ctx)
	require.NoError(t, err)
	recs = localRecords(t, fx.store)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].Synced())
	assert.Equal(t, "orphan", recs[0].ClientID)
}

func TestReconcile_CountsConflicts(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.conn.set(true)
	rec, err := fx.records.Create(ctx, fields(5, 1, 1))
	require.NoError(t, err)
	fx.conn.set(false)

	_, err = fx.records.Update(ctx, rec.ClientID, fields(5, 2, 1))
	require.NoError(t, err)

	// another device edits the record after the offline edit was queued
	fx.remote.clock = time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	_, err = fx.remote.UpdateRecord(ctx, rec.ServerID, fields(5, 3, 1))
	require.NoError(t, err)

	sum, err := fx.sync.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Conflicts)

	got, err := fx.records.Get(ctx, rec.ClientID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ScaleValue)
}

func TestReconcile_RoundTripsStoreExactly(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.conn.set(true)
	_, err := fx.records.Create(ctx, fields(5, 1, 1))
	require.NoError(t, err)
	fx.conn.set(false)
	_, err = fx.records.Create(ctx, fields(6, 2, 2))
	require.NoError(t, err)

	fx.remote.failOn = func(string, *models.Fields, int64) error { return client.ErrUnavailable }
	_, err = fx.sync.Reconcile(ctx)
	require.NoError(t, err)

	recs := localRecords(t, fx.store)
	q := localQueue(t, fx.store)
	require.NoError(t, fx.store.Records(fx.store.DB()).ReplaceAll(ctx, recs))
	require.NoError(t, fx.store.Intents(fx.store.DB()).ReplaceAll(ctx, q))

	if diff := cmp.Diff(recs, localRecords(t, fx.store)); diff != "" {
		t.Fatalf("records changed after round trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(q, localQueue(t, fx.store)); diff != "" {
		t.Fatalf("queue changed after round trip (-want +got):\n%s", diff)
	}
}

func TestReconcile_PublishesChange(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.sync.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Change{{Kind: ChangeReconciled}}, fx.changes)
}

func TestDeterministicClientID(t *testing.T) {
	assert.Equal(t, DeterministicClientID(42), DeterministicClientID(42))
	assert.NotEqual(t, DeterministicClientID(42), DeterministicClientID(43))
}
