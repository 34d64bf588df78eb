package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CheckoutProcessor = (*CheckoutService)(nil)

// CheckoutService turns the current cart into an order snapshot and
// empties the cart. The delivery address label comes from the reverse
// geocoder; a lookup failure degrades to a coordinate-only label.
type CheckoutService struct {
	cart *CartService
	auth port.Authenticator
	geo  port.Geocoder
}

func NewCheckoutService(
	cart *CartService, auth port.Authenticator, geo port.Geocoder,
) *CheckoutService {
	return &CheckoutService{cart: cart, auth: auth, geo: geo}
}

func (s *CheckoutService) PlaceOrder(
	ctx context.Context, recipient string, lat, lon float64,
) (domain.Order, error) {
	const op = "CheckoutService.PlaceOrder"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.auth.CurrentSession(ctx); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrNotAuthenticated)
		}
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if recipient == "" {
		return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrEmptyField)
	}

	lines, total := s.cart.Cart(ctx)
	if len(lines) == 0 {
		return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrEmptyCart)
	}

	label, err := s.geo.Reverse(ctx, lat, lon)
	if err != nil {
		label = fmt.Sprintf("(%.6f, %.6f)", lat, lon)
		log.Warn("reverse geocoding failed, using coordinate label", "err", err)
	}

	order := domain.Order{
		ID:           uuid.NewString(),
		Recipient:    recipient,
		AddressLabel: label,
		Lines:        lines,
		Total:        total,
		PlacedAt:     time.Now(),
	}

	if err := s.cart.Dispatch(domain.Clear{}); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("order placed", "orderID", order.ID, "nLines", len(lines), "total", total)
	return order, nil
}
