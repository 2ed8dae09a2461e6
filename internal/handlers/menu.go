// internal/handlers/menu.go
package handlers

import (
	"net/http"

	"menu-planner/internal/models"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type mealView struct {
	Slot   models.MealSlot `json:"slot"`
	Label  string          `json:"label"`
	Dishes []dishView      `json:"dishes"`
}

type dishView struct {
	Category models.Category `json:"category"`
	Label    string          `json:"label"`
	Dish     string          `json:"dish"`
}

type menuResponse struct {
	Date      string         `json:"date"`
	Menu      models.DayMenu `json:"menu"`
	Meals     []mealView     `json:"meals"`
	Persisted bool           `json:"persisted"`
}

func newMenuResponse(entry models.HistoryEntry, persisted bool) menuResponse {
	resp := menuResponse{Date: entry.Date, Menu: entry.Menu, Persisted: persisted}
	for _, slot := range models.AllMealSlots {
		meal := entry.Menu.Slot(slot)
		view := mealView{Slot: slot, Label: slot.Label()}
		for _, c := range models.AllCategories {
			view.Dishes = append(view.Dishes, dishView{Category: c, Label: c.Label(), Dish: meal[c]})
		}
		resp.Meals = append(resp.Meals, view)
	}
	return resp
}

func (h *Handler) GetToday(w http.ResponseWriter, r *http.Request) {
	entry, err := h.planner.Today(r.Context())
	ok, saved := h.persisted(w, "GetToday", err)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newMenuResponse(entry, saved))
}

func (h *Handler) RefreshDay(w http.ResponseWriter, r *http.Request) {
	entry, err := h.planner.RefreshDay(r.Context())
	ok, saved := h.persisted(w, "RefreshDay", err)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newMenuResponse(entry, saved))
}

func (h *Handler) RefreshMeal(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["meal"]
	if err := h.validate.Var(raw, "required,oneof=lunch dinner"); err != nil {
		http.Error(w, "Invalid meal, expected lunch or dinner", http.StatusBadRequest)
		return
	}

	entry, err := h.planner.RefreshMeal(r.Context(), models.MealSlot(raw))
	ok, saved := h.persisted(w, "RefreshMeal", err)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newMenuResponse(entry, saved))
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.planner.History(r.Context())
	if err != nil {
		h.logger.Error("GetHistory failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
