package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"menu-planner/internal/menu"
	"menu-planner/internal/models"

	"go.uber.org/zap"
)

const CategoriesKey = "menu-categories"

// CatalogRepository persists the dish catalog as one JSON object keyed by
// category identifier.
type CatalogRepository struct {
	kv     KeyValueRepository
	logger *zap.Logger
}

func NewCatalogRepository(kv KeyValueRepository, logger *zap.Logger) *CatalogRepository {
	return &CatalogRepository{kv: kv, logger: logger}
}

// LoadCatalog returns the stored catalog merged with the defaults. Missing or
// malformed data falls back to defaults per category; only store errors are
// returned.
func (r *CatalogRepository) LoadCatalog(ctx context.Context) (models.Catalog, error) {
	raw, err := r.kv.Get(ctx, CategoriesKey)
	if errors.Is(err, ErrKeyNotFound) {
		return menu.DefaultCatalog(), nil
	}
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		r.logger.Warn("Discarding malformed catalog", zap.Error(err))
		return menu.DefaultCatalog(), nil
	}

	partial := make(models.Catalog, len(models.AllCategories))
	for _, c := range models.AllCategories {
		msg, ok := fields[string(c)]
		if !ok {
			continue
		}
		var list []string
		if err := json.Unmarshal(msg, &list); err != nil {
			r.logger.Warn("Discarding malformed category", zap.String("category", string(c)), zap.Error(err))
			continue
		}
		partial[c] = list
	}
	return menu.MergeCatalog(partial), nil
}

func (r *CatalogRepository) SaveCatalog(ctx context.Context, catalog models.Catalog) error {
	clean := menu.CleanCatalog(catalog)
	data, err := json.Marshal(clean)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return r.kv.Set(ctx, CategoriesKey, string(data))
}
