package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET    v1/cart
// POST   v1/cart/items JSON {"item_id"}
// PATCH  v1/cart/items/{id} JSON {"quantity"}
// DELETE v1/cart/items/{id}

type CartHandler struct {
	cart port.CartOperator
}

func RegisterCart(mux *http.ServeMux, cart port.CartOperator) {
	h := CartHandler{cart}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PATCH /v1/cart/items/{id}", h.PatchItem)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.DeleteItem)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	lines, total := h.cart.Cart(r.Context())
	writeJSON(w, http.StatusOK, toCartView(lines, total))
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var body AddCartItem
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if err := h.cart.AddItem(r.Context(), body.ItemID); err != nil {
		writeError(w, err)
		log.Warn("failed to add item", "itemID", body.ItemID, "err", err)
		return
	}

	lines, total := h.cart.Cart(r.Context())
	writeJSON(w, http.StatusCreated, toCartView(lines, total))
	log.Info("item added", "itemID", body.ItemID)
}

func (h CartHandler) PatchItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PatchItem"
	log := slog.With("op", op)

	itemID := r.PathValue("id")

	var body UpdateCartItem
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if err := h.cart.UpdateQuantity(r.Context(), itemID, body.Quantity); err != nil {
		writeError(w, err)
		log.Warn("failed to update quantity",
			"itemID", itemID, "quantity", body.Quantity, "err", err)
		return
	}

	lines, total := h.cart.Cart(r.Context())
	writeJSON(w, http.StatusOK, toCartView(lines, total))
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"
	log := slog.With("op", op)

	itemID := r.PathValue("id")
	if err := h.cart.RemoveItem(r.Context(), itemID); err != nil {
		writeError(w, err)
		log.Warn("failed to remove item", "itemID", itemID, "err", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	log.Info("item removed", "itemID", itemID)
}

func toCartView(lines []domain.CartLine, total int64) CartView {
	out := make([]CartLine, len(lines))
	for i, l := range lines {
		out[i] = CartLine{
			ItemID:   l.ItemID,
			Name:     l.Name,
			ImageURL: l.ImageURL,
			Price:    l.Price,
			Quantity: l.Quantity,
		}
	}
	return CartView{Lines: out, Total: total}
}
