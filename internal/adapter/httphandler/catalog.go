package httphandler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET  v1/catalog/items?search=&category=&price_min=&price_max=&sort=&page=&page_size=
// GET  v1/catalog/categories
// POST v1/catalog/refresh

type CatalogHandler struct {
	browser port.CatalogBrowser
}

func RegisterCatalog(mux *http.ServeMux, browser port.CatalogBrowser) {
	h := CatalogHandler{browser}
	mux.HandleFunc("GET /v1/catalog/items", h.GetItems)
	mux.HandleFunc("GET /v1/catalog/categories", h.GetCategories)
	mux.HandleFunc("POST /v1/catalog/refresh", h.PostRefresh)
}

// GetItems treats present query params as partial updates of the
// query engine; omitted params keep their current values.
func (h CatalogHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetItems"
	log := slog.With("op", op)

	q, err := parseCatalogQuery(r)
	if err != nil {
		http.Error(w, "invalid query parameter", http.StatusBadRequest)
		log.Warn("failed to parse query", "err", err)
		return
	}

	view, err := h.browser.Browse(r.Context(), q)
	if err != nil {
		writeError(w, err)
		log.Warn("failed to browse catalog", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toCatalogView(view))
}

func (h CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetCategories"
	log := slog.With("op", op)

	categories, err := h.browser.Categories(r.Context())
	if err != nil {
		writeError(w, err)
		log.Warn("failed to read categories", "err", err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h CatalogHandler) PostRefresh(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.PostRefresh"
	log := slog.With("op", op)

	if err := h.browser.Refresh(r.Context()); err != nil {
		writeError(w, err)
		log.Error("failed to refresh catalog", "err", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	log.Info("catalog refreshed")
}

func parseCatalogQuery(r *http.Request) (port.CatalogQuery, error) {
	var q port.CatalogQuery
	values := r.URL.Query()

	if values.Has("search") {
		v := values.Get("search")
		q.SearchTerm = &v
	}
	if values.Has("category") {
		v := values.Get("category")
		q.SelectedCategory = &v
	}
	if values.Has("price_min") {
		v, err := strconv.ParseInt(values.Get("price_min"), 10, 64)
		if err != nil {
			return port.CatalogQuery{}, err
		}
		q.PriceMin = &v
	}
	if values.Has("price_max") {
		v, err := strconv.ParseInt(values.Get("price_max"), 10, 64)
		if err != nil {
			return port.CatalogQuery{}, err
		}
		q.PriceMax = &v
	}
	if values.Has("sort") {
		v := domain.SortOption(values.Get("sort"))
		q.Sort = &v
	}
	if values.Has("page") {
		v, err := strconv.Atoi(values.Get("page"))
		if err != nil {
			return port.CatalogQuery{}, err
		}
		q.Page = &v
	}
	if values.Has("page_size") {
		v, err := strconv.Atoi(values.Get("page_size"))
		if err != nil {
			return port.CatalogQuery{}, err
		}
		q.PageSize = &v
	}
	return q, nil
}

func toCatalogView(v domain.CatalogView) CatalogView {
	items := make([]Item, len(v.Items))
	for i, it := range v.Items {
		items[i] = Item{
			ID:       it.ID,
			Name:     it.Name,
			Category: it.Category,
			ImageURL: it.ImageURL,
			Price:    it.Price,
			Tags:     it.Tags,
		}
	}
	return CatalogView{
		Items:      items,
		TotalItems: v.TotalItems,
		Page:       v.Page,
		PageSize:   v.PageSize,
		Categories: v.Categories,
	}
}
