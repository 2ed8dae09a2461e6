// internal/handlers/categories.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"menu-planner/internal/models"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type categoryView struct {
	Key    models.Category `json:"key"`
	Label  string          `json:"label"`
	Dishes []string        `json:"dishes"`
}

type catalogResponse struct {
	Categories []categoryView `json:"categories"`
	Persisted  bool           `json:"persisted"`
}

// replaceCatalogRequest replaces the lists of the categories it names.
// A category holds at most 500 dishes of at most 200 characters each.
type replaceCatalogRequest struct {
	Categories map[string][]string `json:"categories" validate:"required,min=1,dive,keys,oneof=meat fish vegetable side soup fruit,endkeys,max=500,dive,max=200"`
}

// updateCategoryRequest carries editor text, one dish per line, up to 64 KiB
// of characters.
type updateCategoryRequest struct {
	Text string `json:"text" validate:"max=65536"`
}

func newCatalogResponse(catalog models.Catalog, persisted bool) catalogResponse {
	resp := catalogResponse{Persisted: persisted}
	for _, c := range models.AllCategories {
		dishes := catalog[c]
		if dishes == nil {
			dishes = []string{}
		}
		resp.Categories = append(resp.Categories, categoryView{Key: c, Label: c.Label(), Dishes: dishes})
	}
	return resp
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.planner.Catalog(r.Context())
	if err != nil {
		h.logger.Error("GetCategories failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, newCatalogResponse(catalog, true))
}

func (h *Handler) ReplaceCategories(w http.ResponseWriter, r *http.Request) {
	var req replaceCatalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON data: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "Invalid categories: "+err.Error(), http.StatusBadRequest)
		return
	}

	updates := make(models.Catalog, len(req.Categories))
	for key, dishes := range req.Categories {
		updates[models.Category(key)] = dishes
	}

	catalog, err := h.planner.SaveCatalog(r.Context(), updates)
	ok, saved := h.categoryResult(w, "ReplaceCategories", err)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newCatalogResponse(catalog, saved))
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	category, err := models.ParseCategory(mux.Vars(r)["category"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req updateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON data: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "Invalid text: "+err.Error(), http.StatusBadRequest)
		return
	}

	catalog, err := h.planner.UpdateCategory(r.Context(), category, req.Text)
	ok, saved := h.categoryResult(w, "UpdateCategory", err)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newCatalogResponse(catalog, saved))
}

func (h *Handler) categoryResult(w http.ResponseWriter, op string, err error) (bool, bool) {
	var catErr *models.UnknownCategoryError
	if errors.As(err, &catErr) {
		http.Error(w, catErr.Error(), http.StatusBadRequest)
		return false, false
	}
	return h.persisted(w, op, err)
}
