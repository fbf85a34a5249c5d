package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/daylog/internal/common"
	"github.com/dmitrijs2005/daylog/internal/dbx"
	"github.com/dmitrijs2005/daylog/internal/server/models"
	"github.com/dmitrijs2005/daylog/internal/timex"
)

const recordColumns = `id, user_id, occurred_on, logged_at, scale_value, count, note, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (models.Record, error) {
	var (
		r          models.Record
		occurredOn time.Time
	)
	err := s.Scan(&r.ID, &r.UserID, &occurredOn, &r.LoggedAt, &r.ScaleValue, &r.Count, &r.Note, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return r, err
	}
	r.OccurredOn = timex.DateOf(occurredOn)
	return r, nil
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]models.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]models.Record, error) {
	return r.query(ctx, `SELECT `+recordColumns+` FROM records WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *PostgresRepository) ListByDate(ctx context.Context, userID string, date timex.Date) ([]models.Record, error) {
	return r.query(ctx, `SELECT `+recordColumns+` FROM records WHERE user_id = $1 AND occurred_on = $2 ORDER BY id`,
		userID, date.Time())
}

func (r *PostgresRepository) Create(ctx context.Context, rec *models.Record) (*models.Record, error) {
	query := `
		INSERT INTO records (user_id, occurred_on, logged_at, scale_value, count, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + recordColumns

	out, err := scanRecord(r.db.QueryRowContext(ctx, query,
		rec.UserID, rec.OccurredOn.Time(), rec.LoggedAt, rec.ScaleValue, rec.Count, rec.Note))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &out, nil
}

func (r *PostgresRepository) Update(ctx context.Context, rec *models.Record) (*models.Record, error) {
	query := `
		UPDATE records
		SET occurred_on = $3, logged_at = $4, scale_value = $5, count = $6, note = $7, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + recordColumns

	out, err := scanRecord(r.db.QueryRowContext(ctx, query,
		rec.ID, rec.UserID, rec.OccurredOn.Time(), rec.LoggedAt, rec.ScaleValue, rec.Count, rec.Note))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &out, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID string, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
