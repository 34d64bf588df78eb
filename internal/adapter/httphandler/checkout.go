package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// POST v1/checkout JSON {"recipient","lat","lon"}
// GET  v1/geo/search?q=
// GET  v1/geo/reverse?lat=&lon=

type CheckoutHandler struct {
	checkout port.CheckoutProcessor
}

func RegisterCheckout(mux *http.ServeMux, checkout port.CheckoutProcessor) {
	h := CheckoutHandler{checkout}
	mux.HandleFunc("POST /v1/checkout", h.PostCheckout)
}

func (h CheckoutHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.PostCheckout"
	log := slog.With("op", op)

	var body CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	order, err := h.checkout.PlaceOrder(r.Context(), body.Recipient, body.Lat, body.Lon)
	if err != nil {
		writeError(w, err)
		log.Warn("failed to place order", "err", err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrder(order))
}

type GeoHandler struct {
	geo port.Geocoder
}

func RegisterGeo(mux *http.ServeMux, geo port.Geocoder) {
	h := GeoHandler{geo}
	mux.HandleFunc("GET /v1/geo/search", h.GetSearch)
	mux.HandleFunc("GET /v1/geo/reverse", h.GetReverse)
}

func (h GeoHandler) GetSearch(w http.ResponseWriter, r *http.Request) {
	const op = "GeoHandler.GetSearch"
	log := slog.With("op", op)

	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusOK, []Place{})
		return
	}

	places, err := h.geo.Search(r.Context(), query)
	if err != nil {
		http.Error(w, "geocoding unavailable", http.StatusBadGateway)
		log.Warn("failed to search locations", "err", err)
		return
	}

	out := make([]Place, len(places))
	for i, p := range places {
		out[i] = Place{DisplayName: p.DisplayName, Lat: p.Lat, Lon: p.Lon}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h GeoHandler) GetReverse(w http.ResponseWriter, r *http.Request) {
	const op = "GeoHandler.GetReverse"
	log := slog.With("op", op)

	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		http.Error(w, "invalid coordinates", http.StatusBadRequest)
		return
	}

	name, err := h.geo.Reverse(r.Context(), lat, lon)
	if err != nil {
		http.Error(w, "geocoding unavailable", http.StatusBadGateway)
		log.Warn("failed to reverse geocode", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, Place{DisplayName: name, Lat: lat, Lon: lon})
}

func toOrder(o domain.Order) Order {
	lines := make([]CartLine, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = CartLine{
			ItemID:   l.ItemID,
			Name:     l.Name,
			ImageURL: l.ImageURL,
			Price:    l.Price,
			Quantity: l.Quantity,
		}
	}
	return Order{
		ID:           o.ID,
		Recipient:    o.Recipient,
		AddressLabel: o.AddressLabel,
		Lines:        lines,
		Total:        o.Total,
		PlacedAt:     o.PlacedAt.Format(time.RFC3339),
	}
}
