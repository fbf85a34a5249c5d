package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/daylog/internal/common"
	"github.com/dmitrijs2005/daylog/internal/dbx"
	"github.com/dmitrijs2005/daylog/internal/server/config"
	"github.com/dmitrijs2005/daylog/internal/server/models"
	"github.com/dmitrijs2005/daylog/internal/server/repositories/records"
	"github.com/dmitrijs2005/daylog/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/daylog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/daylog/internal/server/repositories/users"
	"github.com/dmitrijs2005/daylog/internal/timex"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newUserService(t *testing.T, db *sql.DB, rm repomanager.RepositoryManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	return NewUserService(db, rm, cfg)
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type createdToken struct {
	userID    string
	token     string
	expiresAt time.Time
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr    error
	deleted   []string
	createErr error
	created   []createdToken

	expiredErr  error
	expiredUser string
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, expiresAt time.Time) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, createdToken{userID: userID, token: token, expiresAt: expiresAt})
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, token)
	return nil
}

func (f *fakeRefreshRepo) DeleteExpired(ctx context.Context, userID string, now time.Time) (int64, error) {
	f.expiredUser = userID
	return 0, f.expiredErr
}

// fakeRecordsRepo keeps records in memory keyed by id.
type fakeRecordsRepo struct {
	items  map[int64]models.Record
	nextID int64
	err    error
}

func newFakeRecordsRepo() *fakeRecordsRepo {
	return &fakeRecordsRepo{items: map[int64]models.Record{}, nextID: 1}
}

func (f *fakeRecordsRepo) List(ctx context.Context, userID string) ([]models.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Record
	for id := int64(1); id < f.nextID; id++ {
		if r, ok := f.items[id]; ok && r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecordsRepo) ListByDate(ctx context.Context, userID string, date timex.Date) ([]models.Record, error) {
	all, err := f.List(ctx, userID)
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

func (f *fakeRecordsRepo) Create(ctx context.Context, r *models.Record) (*models.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	r.ID = f.nextID
	f.nextID++
	f.items[r.ID] = *r
	return r, nil
}

func (f *fakeRecordsRepo) Update(ctx context.Context, r *models.Record) (*models.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	cur, ok := f.items[r.ID]
	if !ok || cur.UserID != r.UserID {
		return nil, common.ErrorNotFound
	}
	f.items[r.ID] = *r
	return r, nil
}

func (f *fakeRecordsRepo) Delete(ctx context.Context, userID string, id int64) error {
	if f.err != nil {
		return f.err
	}
	cur, ok := f.items[id]
	if !ok || cur.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeRepoManager struct {
	u   *fakeUsersRepo
	r   *fakeRefreshRepo
	rec *fakeRecordsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error       { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository { return m.r }
func (m *fakeRepoManager) Records(db dbx.DBTX) records.Repository             { return m.rec }
