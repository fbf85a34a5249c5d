package records

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/daylog/internal/common"
	"github.com/dmitrijs2005/daylog/internal/server/models"
	"github.com/dmitrijs2005/daylog/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"id", "user_id", "occurred_on", "logged_at", "scale_value", "count", "note", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

var (
	day     = timex.NewDate(2024, time.January, 5)
	logged  = time.Date(2024, time.January, 5, 21, 30, 0, 0, time.UTC)
	created = time.Date(2024, time.January, 6, 8, 0, 0, 0, time.UTC)
)

func row(rows *sqlmock.Rows, id int64, note string) *sqlmock.Rows {
	return rows.AddRow(id, "u1", day.Time(), logged, 4, 1, note, created, created)
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT .* FROM records WHERE user_id = \$1 ORDER BY id$`).
		WithArgs("u1").
		WillReturnRows(row(row(sqlmock.NewRows(columns), 1, "a"), 2, "b"))

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.Record{
		ID: 1, UserID: "u1", OccurredOn: day, LoggedAt: logged, ScaleValue: 4, Count: 1,
		Note: "a", CreatedAt: created, UpdatedAt: created,
	}, got[0])
	assert.Equal(t, int64(2), got[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_EmptyIsNotNil(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM records WHERE user_id`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM records WHERE user_id`).
		WithArgs("u1").
		WillReturnError(errors.New("db down"))

	_, err := repo.List(context.Background(), "u1")
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestListByDate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT .* FROM records WHERE user_id = \$1 AND occurred_on = \$2 ORDER BY id$`).
		WithArgs("u1", day.Time()).
		WillReturnRows(row(sqlmock.NewRows(columns), 7, ""))

	got, err := repo.ListByDate(context.Background(), "u1", day)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, day, got[0].OccurredOn)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^\s*INSERT\s+INTO\s+records\s*\(user_id,\s*occurred_on,\s*logged_at,\s*scale_value,\s*count,\s*note\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING`).
		WithArgs("u1", day.Time(), logged, 4, 1, "n").
		WillReturnRows(row(sqlmock.NewRows(columns), 9, "n"))

	got, err := repo.Create(context.Background(), &models.Record{
		UserID: "u1", OccurredOn: day, LoggedAt: logged, ScaleValue: 4, Count: 1, Note: "n",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)
	assert.Equal(t, created, got.CreatedAt)
}

func TestUpdate(t *testing.T) {
	q := `(?s)^\s*UPDATE\s+records\s+SET .* updated_at = now\(\)\s+WHERE\s+id = \$1 AND user_id = \$2\s+RETURNING`
	rec := &models.Record{ID: 9, UserID: "u1", OccurredOn: day, LoggedAt: logged, ScaleValue: 4, Count: 1, Note: "n"}

	t.Run("ok", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).
			WithArgs(int64(9), "u1", day.Time(), logged, 4, 1, "n").
			WillReturnRows(row(sqlmock.NewRows(columns), 9, "n"))

		got, err := repo.Update(context.Background(), rec)
		require.NoError(t, err)
		assert.Equal(t, "n", got.Note)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WillReturnError(sql.ErrNoRows)

		_, err := repo.Update(context.Background(), rec)
		require.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WillReturnError(errors.New("boom"))

		_, err := repo.Update(context.Background(), rec)
		require.Error(t, err)
		assert.NotErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestDelete(t *testing.T) {
	q := `^DELETE FROM records WHERE id = \$1 AND user_id = \$2$`

	t.Run("ok", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WithArgs(int64(9), "u1").WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, repo.Delete(context.Background(), "u1", 9))
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WithArgs(int64(9), "u1").WillReturnResult(sqlmock.NewResult(0, 0))
		require.ErrorIs(t, repo.Delete(context.Background(), "u1", 9), common.ErrorNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WithArgs(int64(9), "u1").WillReturnError(errors.New("boom"))
		require.Error(t, repo.Delete(context.Background(), "u1", 9))
	})
}
