package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"menu-planner/internal/models"

	"go.uber.org/zap"
)

const HistoryKey = "menu-history"

// HistoryRepository persists the menu history as a JSON array, newest first.
type HistoryRepository struct {
	kv     KeyValueRepository
	logger *zap.Logger
}

func NewHistoryRepository(kv KeyValueRepository, logger *zap.Logger) *HistoryRepository {
	return &HistoryRepository{kv: kv, logger: logger}
}

// LoadHistory returns the stored entries. Data that is not a JSON array is
// discarded; so are entries without a valid date or with a date already
// seen earlier in the list.
func (r *HistoryRepository) LoadHistory(ctx context.Context) ([]models.HistoryEntry, error) {
	raw, err := r.kv.Get(ctx, HistoryKey)
	if errors.Is(err, ErrKeyNotFound) {
		return []models.HistoryEntry{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		r.logger.Warn("Discarding malformed history", zap.Error(err))
		return []models.HistoryEntry{}, nil
	}

	history := make([]models.HistoryEntry, 0, len(items))
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		var entry models.HistoryEntry
		if err := json.Unmarshal(item, &entry); err != nil || !models.ValidDateKey(entry.Date) {
			r.logger.Warn("Skipping malformed history entry", zap.Int("index", i))
			continue
		}
		if seen[entry.Date] {
			r.logger.Warn("Skipping duplicate history entry", zap.Int("index", i), zap.String("date", entry.Date))
			continue
		}
		seen[entry.Date] = true
		if entry.Menu.Lunch == nil {
			entry.Menu.Lunch = models.Meal{}
		}
		if entry.Menu.Dinner == nil {
			entry.Menu.Dinner = models.Meal{}
		}
		history = append(history, entry)
	}
	return history, nil
}

func (r *HistoryRepository) SaveHistory(ctx context.Context, history []models.HistoryEntry) error {
	if history == nil {
		history = []models.HistoryEntry{}
	}
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return r.kv.Set(ctx, HistoryKey, string(data))
}
