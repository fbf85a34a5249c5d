package services

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/daylog/internal/client/client"
	"github.com/dmitrijs2005/daylog/internal/client/models"
	"github.com/dmitrijs2005/daylog/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/daylog/internal/logging"
	"github.com/dmitrijs2005/daylog/internal/timex"
	"github.com/stretchr/testify/require"
)

// ---- local store ----

func openStore(t *testing.T) *repomanager.Manager {
	t.Helper()
	m, err := repomanager.Open(context.Background(), filepath.Join(t.TempDir(), "daylog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func localRecords(t *testing.T, s Storage) []models.Record {
	t.Helper()
	recs, err := s.Records(s.DB()).List(context.Background())
	require.NoError(t, err)
	return recs
}

func localQueue(t *testing.T, s Storage) []models.Intent {
	t.Helper()
	q, err := s.Intents(s.DB()).List(context.Background())
	require.NoError(t, err)
	return q
}

// ---- connectivity ----

type switchConn struct{ online atomic.Bool }

func (c *switchConn) IsOnline() bool { return c.online.Load() }
func (c *switchConn) set(v bool)     { c.online.Store(v) }

// ---- fake server ----

// fakeRemote is an in-memory server-side record store. failOn lets a test
// fail a specific call; listErrs fails consecutive ListRecords calls.
type fakeRemote struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]models.Record
	clock   time.Time

	failOn   func(op string, fields *models.Fields, serverID int64) error
	listErrs []error
	block    chan struct{}

	creates []models.Fields
	updates []int64
	deletes []int64
	lists   int

	saltRet     []byte
	saltErr     error
	loginErr    error
	registerErr error
	pingErr     error
	closeErr    error
	loggedOut   bool

	lastRegisterUser string
	lastRegisterSalt []byte
	lastRegisterKey  []byte
	lastLoginUser    string
	lastLoginKey     []byte
}

var _ client.Client = (*fakeRemote)(nil)

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		nextID:  100,
		records: make(map[int64]models.Record),
		clock:   time.Date(2024, time.February, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRemote) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeRemote) fail(op string, fields *models.Fields, id int64) error {
	if f.failOn == nil {
		return nil
	}
	return f.failOn(op, fields, id)
}

// seed stores a record directly on the server, as another device would.
func (f *fakeRemote) seed(fields models.Fields) models.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	now := f.tick()
	r := models.Record{ServerID: f.nextID, Fields: fields, CreatedAt: now, UpdatedAt: now}
	f.records[r.ServerID] = r
	return r
}

func (f *fakeRemote) drop(serverID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, serverID)
}

func (f *fakeRemote) ListRecords(ctx context.Context) ([]models.Record, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if len(f.listErrs) > 0 {
		err := f.listErrs[0]
		f.listErrs = f.listErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	out := make([]models.Record, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ServerID < out[j].ServerID })
	return out, nil
}

func (f *fakeRemote) GetRecordsByDate(ctx context.Context, date timex.Date) ([]models.Record, error) {
	all, err := f.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Record
	for _, r := range all {
		if r.OccurredOn == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRemote) CreateRecord(ctx context.Context, fields models.Fields) (*models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, fields)
	if err := f.fail("create", &fields, 0); err != nil {
		return nil, err
	}
	f.nextID++
	now := f.tick()
	r := models.Record{ServerID: f.nextID, Fields: fields, CreatedAt: now, UpdatedAt: now}
	f.records[r.ServerID] = r
	return &r, nil
}

func (f *fakeRemote) UpdateRecord(ctx context.Context, serverID int64, fields models.Fields) (*models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, serverID)
	if err := f.fail("update", &fields, serverID); err != nil {
		return nil, err
	}
	r, ok := f.records[serverID]
	if !ok {
		return nil, client.ErrNotFound
	}
	r.Fields = fields
	r.UpdatedAt = f.tick()
	f.records[serverID] = r
	return &r, nil
}

func (f *fakeRemote) DeleteRecord(ctx context.Context, serverID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, serverID)
	if err := f.fail("delete", nil, serverID); err != nil {
		return err
	}
	if _, ok := f.records[serverID]; !ok {
		return client.ErrNotFound
	}
	delete(f.records, serverID)
	return nil
}

func (f *fakeRemote) Close() error { return f.closeErr }

func (f *fakeRemote) Register(ctx context.Context, username string, salt []byte, key []byte) error {
	f.lastRegisterUser = username
	f.lastRegisterSalt = append([]byte(nil), salt...)
	f.lastRegisterKey = append([]byte(nil), key...)
	return f.registerErr
}

func (f *fakeRemote) GetSalt(ctx context.Context, username string) ([]byte, error) {
	return append([]byte(nil), f.saltRet...), f.saltErr
}

func (f *fakeRemote) Login(ctx context.Context, username string, key []byte) error {
	f.lastLoginUser = username
	f.lastLoginKey = append([]byte(nil), key...)
	return f.loginErr
}

func (f *fakeRemote) Logout() { f.loggedOut = true }

func (f *fakeRemote) Ping(ctx context.Context) error { return f.pingErr }

// ---- fixture ----

type fixture struct {
	store   *repomanager.Manager
	remote  *fakeRemote
	conn    *switchConn
	events  *Notifier
	records *RecordService
	sync    *SyncService
	changes []Change
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fx := &fixture{
		store:  openStore(t),
		remote: newFakeRemote(),
		conn:   &switchConn{},
		events: NewNotifier(),
	}
	var mu sync.Mutex
	fx.records = NewRecordService(fx.store, fx.remote, fx.conn, &mu, fx.events, logging.Nop{})
	fx.sync = NewSyncService(fx.store, fx.remote, &mu, fx.events, logging.Nop{})

	clock := time.Date(2024, time.January, 5, 9, 0, 0, 0, time.UTC)
	fx.records.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	fx.events.Subscribe(func(c Change) { fx.changes = append(fx.changes, c) })
	return fx
}

func day(d int) timex.Date {
	return timex.NewDate(2024, time.January, d)
}

func fields(d, scale, count int) models.Fields {
	return models.Fields{
		OccurredOn: day(d),
		LoggedAt:   time.Date(2024, time.January, d, 21, 30, 0, 0, time.UTC),
		ScaleValue: scale,
		Count:      count,
	}
}
