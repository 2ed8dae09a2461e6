// internal/handlers/handler.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"menu-planner/internal/menu"
	"menu-planner/internal/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// MenuPlanner is the part of menu.Planner the API needs.
type MenuPlanner interface {
	Today(ctx context.Context) (models.HistoryEntry, error)
	RefreshDay(ctx context.Context) (models.HistoryEntry, error)
	RefreshMeal(ctx context.Context, slot models.MealSlot) (models.HistoryEntry, error)
	History(ctx context.Context) ([]models.HistoryEntry, error)
	Catalog(ctx context.Context) (models.Catalog, error)
	SaveCatalog(ctx context.Context, updates models.Catalog) (models.Catalog, error)
	UpdateCategory(ctx context.Context, c models.Category, text string) (models.Catalog, error)
}

type Handler struct {
	planner  MenuPlanner
	validate *validator.Validate
	logger   *zap.Logger
}

func New(planner MenuPlanner, logger *zap.Logger) *Handler {
	return &Handler{
		planner:  planner,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// persisted reports whether err is nil or only a failed write. Any other
// error has already been answered with a 500.
func (h *Handler) persisted(w http.ResponseWriter, op string, err error) (ok bool, saved bool) {
	if err == nil {
		return true, true
	}
	if errors.Is(err, menu.ErrPersist) {
		h.logger.Warn(op+": state not persisted", zap.Error(err))
		return true, false
	}
	h.logger.Error(op+" failed", zap.Error(err))
	http.Error(w, err.Error(), http.StatusInternalServerError)
	return false, false
}
