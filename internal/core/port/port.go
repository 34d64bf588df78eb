package port

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
)

// Driven ports: external collaborators the core depends on.

type CatalogSource interface {
	FetchItems(context.Context) ([]domain.CatalogItem, error)
}

type Geocoder interface {
	Search(ctx context.Context, query string) ([]domain.Place, error)
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}

type UserRepository interface {
	ReadUsers(context.Context) ([]domain.User, error)
	StoreUsers(context.Context, []domain.User) error
}

type SessionRepository interface {
	ReadSession(context.Context) (domain.Session, error)
	StoreSession(context.Context, domain.Session) error
	DeleteSession(context.Context) error
}

// Driving ports: core services as seen by the inbound adapters.

// CatalogQuery carries a partial update of the engine parameters.
// Nil fields leave the current value untouched.
type CatalogQuery struct {
	SearchTerm       *string
	SelectedCategory *string
	PriceMin         *int64
	PriceMax         *int64
	Sort             *domain.SortOption
	Page             *int
	PageSize         *int
}

type CatalogBrowser interface {
	Refresh(context.Context) error
	Browse(ctx context.Context, q CatalogQuery) (domain.CatalogView, error)
	Categories(context.Context) ([]string, error)
	Item(ctx context.Context, itemID string) (domain.CatalogItem, error)
}

type CartOperator interface {
	AddItem(ctx context.Context, itemID string) error
	UpdateQuantity(ctx context.Context, itemID string, quantity int) error
	RemoveItem(ctx context.Context, itemID string) error
	Cart(context.Context) ([]domain.CartLine, int64)
}

type Authenticator interface {
	Register(ctx context.Context, username, password string) (domain.User, error)
	Login(ctx context.Context, username, password string) (domain.Session, error)
	Logout(context.Context) error
	CurrentSession(context.Context) (domain.Session, error)
}

type CheckoutProcessor interface {
	PlaceOrder(ctx context.Context, recipient string, lat, lon float64) (domain.Order, error)
}
