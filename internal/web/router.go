package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the page and the JSON API.
func NewRouter(log *slog.Logger, h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(recoveryMiddleware(log), loggingMiddleware(log), sessionMiddleware)

	r.HandleFunc("/", h.Index).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/categories", h.Categories).Methods(http.MethodGet)
	api.HandleFunc("/view", h.View).Methods(http.MethodGet)
	api.HandleFunc("/selection/all/toggle", h.ToggleAll).Methods(http.MethodPost)
	api.HandleFunc("/selection/{slug}/toggle", h.ToggleCategory).Methods(http.MethodPost)

	return r
}
