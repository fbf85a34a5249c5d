package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/daylog/internal/common"
	"github.com/dmitrijs2005/daylog/internal/server/models"
	"github.com/dmitrijs2005/daylog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/daylog/internal/timex"
)

// RecordService serves the records of one user at a time; every call takes
// the owner's id as taken from the access token.
type RecordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRecordService(db *sql.DB, m repomanager.RepositoryManager) *RecordService {
	return &RecordService{db: db, repomanager: m}
}

func validateRecord(r *models.Record) error {
	if r.OccurredOn.IsZero() {
		return fmt.Errorf("%w: date is required", common.ErrorValidation)
	}
	if r.ScaleValue < common.MinScaleValue || r.ScaleValue > common.MaxScaleValue {
		return fmt.Errorf("%w: scale must be between %d and %d", common.ErrorValidation, common.MinScaleValue, common.MaxScaleValue)
	}
	if r.Count < common.MinCount {
		return fmt.Errorf("%w: count must be at least %d", common.ErrorValidation, common.MinCount)
	}
	return nil
}

func (s *RecordService) List(ctx context.Context, userID string) ([]models.Record, error) {
	items, err := s.repomanager.Records(s.db).List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing records: %w", err)
	}
	return items, nil
}

func (s *RecordService) ListByDate(ctx context.Context, userID string, date timex.Date) ([]models.Record, error) {
	items, err := s.repomanager.Records(s.db).ListByDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("error listing records by date: %w", err)
	}
	return items, nil
}

func (s *RecordService) Create(ctx context.Context, userID string, r *models.Record) (*models.Record, error) {
	if err := validateRecord(r); err != nil {
		return nil, err
	}
	r.UserID = userID

	created, err := s.repomanager.Records(s.db).Create(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("error creating record: %w", err)
	}
	return created, nil
}

// Update replaces every editable field of record id.
func (s *RecordService) Update(ctx context.Context, userID string, id int64, r *models.Record) (*models.Record, error) {
	if err := validateRecord(r); err != nil {
		return nil, err
	}
	r.ID = id
	r.UserID = userID

	updated, err := s.repomanager.Records(s.db).Update(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("error updating record %d: %w", id, err)
	}
	return updated, nil
}

func (s *RecordService) Delete(ctx context.Context, userID string, id int64) error {
	if err := s.repomanager.Records(s.db).Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("error deleting record %d: %w", id, err)
	}
	return nil
}
