package records

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/daylog/internal/client/models"
	"github.com/dmitrijs2005/daylog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/daylog/internal/common"
	"github.com/dmitrijs2005/daylog/internal/timex"
)

// StorageKey is the metadata key holding the serialized record set.
const StorageKey = "records"

// KVRepository implements Repository on top of the metadata table.
type KVRepository struct {
	kv metadata.Repository
}

func NewKVRepository(kv metadata.Repository) *KVRepository {
	return &KVRepository{kv: kv}
}

func (r *KVRepository) load(ctx context.Context) ([]models.Record, error) {
	raw, err := r.kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []models.Record{}, nil
	}

	var recs []models.Record
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	return recs, nil
}

func (r *KVRepository) save(ctx context.Context, recs []models.Record) error {
	if recs == nil {
		recs = []models.Record{}
	}
	raw, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	return r.kv.Set(ctx, StorageKey, raw)
}

func (r *KVRepository) List(ctx context.Context) ([]models.Record, error) {
	return r.load(ctx)
}

func (r *KVRepository) GetByDate(ctx context.Context, date timex.Date) ([]models.Record, error) {
	recs, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	var result []models.Record
	for _, rec := range recs {
		if rec.OccurredOn == date {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (r *KVRepository) GetByClientID(ctx context.Context, clientID string) (*models.Record, error) {
	recs, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range recs {
		if recs[i].ClientID == clientID {
			rec := recs[i]
			return &rec, nil
		}
	}
	return nil, fmt.Errorf("record %s: %w", clientID, common.ErrorNotFound)
}

func (r *KVRepository) Upsert(ctx context.Context, record models.Record) error {
	recs, err := r.load(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range recs {
		if recs[i].ClientID == record.ClientID {
			recs[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		recs = append(recs, record)
	}

	return r.save(ctx, recs)
}

func (r *KVRepository) RemoveByClientID(ctx context.Context, clientID string) error {
	recs, err := r.load(ctx)
	if err != nil {
		return err
	}

	kept := recs[:0]
	for _, rec := range recs {
		if rec.ClientID != clientID {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(recs) {
		return nil
	}

	return r.save(ctx, kept)
}

func (r *KVRepository) ReplaceAll(ctx context.Context, recs []models.Record) error {
	return r.save(ctx, recs)
}
