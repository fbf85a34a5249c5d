// Package intents is the durable FIFO log of mutations made while offline.
//
// Like the record store it keeps the whole queue as one JSON array under a
// single metadata key, so order is preserved exactly as appended and every
// write replaces the queue atomically.
package intents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/daylog/internal/client/models"
	"github.com/dmitrijs2005/daylog/internal/client/repositories/metadata"
)

// StorageKey is the metadata key holding the serialized queue.
const StorageKey = "intents"

// Repository is the intent queue contract. Folding and cancellation rules
// are applied by the caller before it rewrites the queue with ReplaceAll.
type Repository interface {
	Enqueue(ctx context.Context, intent models.Intent) error
	List(ctx context.Context) ([]models.Intent, error)
	ReplaceAll(ctx context.Context, intents []models.Intent) error
}

// KVRepository implements Repository on top of the metadata table.
type KVRepository struct {
	kv metadata.Repository
}

func NewKVRepository(kv metadata.Repository) *KVRepository {
	return &KVRepository{kv: kv}
}

func (r *KVRepository) List(ctx context.Context) ([]models.Intent, error) {
	raw, err := r.kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []models.Intent{}, nil
	}

	var queue []models.Intent
	if err := json.Unmarshal(raw, &queue); err != nil {
		return nil, fmt.Errorf("failed to decode intent queue: %w", err)
	}
	return queue, nil
}

func (r *KVRepository) Enqueue(ctx context.Context, intent models.Intent) error {
	queue, err := r.List(ctx)
	if err != nil {
		return err
	}
	return r.ReplaceAll(ctx, append(queue, intent))
}

func (r *KVRepository) ReplaceAll(ctx context.Context, queue []models.Intent) error {
	if queue == nil {
		queue = []models.Intent{}
	}
	raw, err := json.Marshal(queue)
	if err != nil {
		return fmt.Errorf("failed to encode intent queue: %w", err)
	}
	return r.kv.Set(ctx, StorageKey, raw)
}
