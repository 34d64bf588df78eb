package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CartOperator = (*CartService)(nil)

// CartService tracks the selected items and quantities. All mutations
// go through Dispatch, one exhaustive switch over the closed
// domain.CartCommand set.
type CartService struct {
	mu      sync.Mutex
	catalog port.CatalogBrowser
	lines   []domain.CartLine
}

func NewCartService(catalog port.CatalogBrowser) *CartService {
	return &CartService{catalog: catalog}
}

// Dispatch applies one cart command. The only rejected input is a
// quantity below one, surfaced as domain.ErrQuantityTooLow with the
// prior state left unchanged.
func (s *CartService) Dispatch(cmd domain.CartCommand) error {
	const op = "CartService.Dispatch"

	s.mu.Lock()
	defer s.mu.Unlock()

	switch c := cmd.(type) {
	case domain.AddItem:
		s.addItem(c.Item)
	case domain.UpdateQuantity:
		if c.Quantity < 1 {
			return fmt.Errorf("%s: %w", op, domain.ErrQuantityTooLow)
		}
		s.updateQuantity(c.ItemID, c.Quantity)
	case domain.RemoveItem:
		s.lines = slices.DeleteFunc(s.lines, func(l domain.CartLine) bool {
			return l.ItemID == c.ItemID
		})
	case domain.Clear:
		s.lines = nil
	default:
		return fmt.Errorf("%s: unknown command %T", op, cmd)
	}
	return nil
}

// addItem merges on duplicate item id by incrementing the quantity,
// otherwise inserts a new line at quantity one.
func (s *CartService) addItem(item domain.CatalogItem) {
	for i := range s.lines {
		if s.lines[i].ItemID == item.ID {
			s.lines[i].Quantity++
			return
		}
	}
	s.lines = append(s.lines, domain.CartLine{
		ItemID:   item.ID,
		Name:     item.Name,
		ImageURL: item.ImageURL,
		Price:    item.Price,
		Quantity: 1,
	})
}

func (s *CartService) updateQuantity(itemID string, quantity int) {
	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			s.lines[i].Quantity = quantity
			return
		}
	}
}

// AddItem resolves the item against the catalog and dispatches
// domain.AddItem.
func (s *CartService) AddItem(ctx context.Context, itemID string) error {
	const op = "CartService.AddItem"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	item, err := s.catalog.Item(ctx, itemID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.Dispatch(domain.AddItem{Item: item})
}

func (s *CartService) UpdateQuantity(
	ctx context.Context, itemID string, quantity int,
) error {
	const op = "CartService.UpdateQuantity"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.Dispatch(domain.UpdateQuantity{ItemID: itemID, Quantity: quantity})
}

func (s *CartService) RemoveItem(ctx context.Context, itemID string) error {
	const op = "CartService.RemoveItem"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.Dispatch(domain.RemoveItem{ItemID: itemID})
}

// Cart returns a snapshot of the lines and the derived total. The
// total is recomputed on every read, never cached.
func (s *CartService) Cart(ctx context.Context) ([]domain.CartLine, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lines), s.total()
}

func (s *CartService) total() (sum int64) {
	for _, l := range s.lines {
		sum += l.Price * int64(l.Quantity)
	}
	return sum
}
