package domain

import "time"

type CartLine struct {
	ItemID   string
	Name     string
	ImageURL string
	Price    int64
	Quantity int
}

// CartCommand is the closed set of cart mutations. Every variant is
// handled by one exhaustive type switch in the cart ledger.
type CartCommand interface {
	isCartCommand()
}

type (
	AddItem struct {
		Item CatalogItem
	}

	UpdateQuantity struct {
		ItemID   string
		Quantity int
	}

	RemoveItem struct {
		ItemID string
	}

	Clear struct{}
)

func (AddItem) isCartCommand()        {}
func (UpdateQuantity) isCartCommand() {}
func (RemoveItem) isCartCommand()     {}
func (Clear) isCartCommand()          {}

type Order struct {
	ID           string
	Recipient    string
	AddressLabel string
	Lines        []CartLine
	Total        int64
	PlacedAt     time.Time
}
