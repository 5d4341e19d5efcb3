package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/citymap/internal/category"
	"github.com/UnknownOlympus/citymap/internal/presenter"
	"github.com/gorilla/mux"
	"github.com/samber/lo"
)

//go:embed templates/index.html
var templates embed.FS

// PageConfig describes the initial map view rendered into the page.
type PageConfig struct {
	Title       string
	CenterLat   float64
	CenterLon   float64
	Zoom        int
	TileURL     string
	Attribution string
}

// Handler serves the map page and the JSON API driving the session presenters.
type Handler struct {
	log      *slog.Logger
	registry *category.Registry
	store    *presenter.Store
	page     PageConfig
	index    *template.Template
}

type categoryItem struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	Icon string `json:"icon"`
	Tag  string `json:"tag"`
}

type mapOptions struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Zoom        int     `json:"zoom"`
	TileURL     string  `json:"tileURL"`
	Attribution string  `json:"attribution"`
}

type indexData struct {
	Title      string
	Categories []categoryItem
	Map        mapOptions
}

// NewHandler creates a new Handler. It panics if the embedded page template does not parse.
func NewHandler(log *slog.Logger, registry *category.Registry, store *presenter.Store, page PageConfig) *Handler {
	return &Handler{
		log:      log,
		registry: registry,
		store:    store,
		page:     page,
		index:    template.Must(template.ParseFS(templates, "templates/index.html")),
	}
}

// Index renders the map page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		Title:      h.page.Title,
		Categories: h.categoryItems(),
		Map: mapOptions{
			Lat:         h.page.CenterLat,
			Lon:         h.page.CenterLon,
			Zoom:        h.page.Zoom,
			TileURL:     h.page.TileURL,
			Attribution: h.page.Attribution,
		},
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.index.Execute(w, data); err != nil {
		h.log.ErrorContext(r.Context(), "failed to render page", "error", err)
	}
}

// Categories lists the registry.
func (h *Handler) Categories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.log, http.StatusOK, h.categoryItems())
}

// View returns the current state of the caller's session.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.log, http.StatusOK, h.presenter(r).View())
}

// ToggleCategory flips one category and runs a fetch cycle for the new selection.
func (h *Handler) ToggleCategory(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	cat, err := h.registry.LookupSlug(slug)
	if err != nil {
		if errors.Is(err, category.ErrUnknownCategory) {
			writeError(w, h.log, NewAPIError(
				ErrUnknownCategory.Code, ErrUnknownCategory.Message, ErrUnknownCategory.Status, slug))
			return
		}
		writeError(w, h.log, err)
		return
	}

	p := h.presenter(r)
	if err = p.Toggle(cat.Name); err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, h.refresh(r, p))
}

// ToggleAll flips the select-all state and runs a fetch cycle for the new selection.
func (h *Handler) ToggleAll(w http.ResponseWriter, r *http.Request) {
	p := h.presenter(r)
	p.ToggleAll()

	writeJSON(w, h.log, http.StatusOK, h.refresh(r, p))
}

// refresh runs the fetch cycle detached from the request so a closed tab cannot cancel it half way.
func (h *Handler) refresh(r *http.Request, p *presenter.Presenter) presenter.View {
	return p.Refresh(context.WithoutCancel(r.Context()))
}

func (h *Handler) presenter(r *http.Request) *presenter.Presenter {
	return h.store.Get(sessionID(r.Context()))
}

func (h *Handler) categoryItems() []categoryItem {
	return lo.Map(h.registry.All(), func(c category.Category, _ int) categoryItem {
		return categoryItem{Name: c.Name, Slug: c.Slug(), Icon: c.Icon, Tag: c.Tag}
	})
}
