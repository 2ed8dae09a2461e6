package menu

import (
	"context"
	"errors"
	"sync"

	"menu-planner/internal/models"
)

// memStore is an in-memory CatalogStore and HistoryStore.
type memStore struct {
	mu          sync.Mutex
	catalog     models.Catalog
	history     []models.HistoryEntry
	saveErr     error
	historySave int
	catalogSave int
}

func (s *memStore) LoadCatalog(ctx context.Context) (models.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalog == nil {
		return DefaultCatalog(), nil
	}
	return MergeCatalog(s.catalog), nil
}

func (s *memStore) SaveCatalog(ctx context.Context, c models.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.catalogSave++
	s.catalog = c.Clone()
	return nil
}

func (s *memStore) LoadHistory(ctx context.Context) ([]models.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.HistoryEntry(nil), s.history...), nil
}

func (s *memStore) SaveHistory(ctx context.Context, h []models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.historySave++
	s.history = append([]models.HistoryEntry(nil), h...)
	return nil
}

var errDiskFull = errors.New("disk full")

// fixedPicker always returns the same index, clamped to the pool.
type fixedPicker int

func (f fixedPicker) IntN(n int) int {
	return min(int(f), n-1)
}

func meal(meat string) models.Meal {
	return models.Meal{models.CategoryMeat: meat}
}

func entry(date, lunchMeat, dinnerMeat string) models.HistoryEntry {
	return models.HistoryEntry{
		Date: date,
		Menu: models.DayMenu{Lunch: meal(lunchMeat), Dinner: meal(dinnerMeat)},
	}
}
