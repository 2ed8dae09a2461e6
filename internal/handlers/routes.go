// internal/handlers/routes.go
package handlers

import (
	"net/http"

	"menu-planner/internal/middleware"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func NewRouter(h *Handler, csrfStore *middleware.CSRFTokenStore, logger *zap.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))

	// CSRF token endpoint (no CSRF protection needed for this)
	r.HandleFunc("/api/csrf-token", middleware.CSRFTokenHandler(csrfStore)).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.CSRFMiddleware(csrfStore))

	api.HandleFunc("/menu/today", h.GetToday).Methods(http.MethodGet)
	api.HandleFunc("/menu/refresh", h.RefreshDay).Methods(http.MethodPost)
	api.HandleFunc("/menu/refresh/{meal}", h.RefreshMeal).Methods(http.MethodPost)
	api.HandleFunc("/history", h.GetHistory).Methods(http.MethodGet)

	api.HandleFunc("/categories", h.GetCategories).Methods(http.MethodGet)
	api.HandleFunc("/categories", h.ReplaceCategories).Methods(http.MethodPut)
	api.HandleFunc("/categories/{category}", h.UpdateCategory).Methods(http.MethodPut)

	return r
}
