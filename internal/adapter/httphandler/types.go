package httphandler

type (
	Item struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Category string   `json:"category"`
		ImageURL string   `json:"image_url"`
		Price    int64    `json:"price"`
		Tags     []string `json:"tags,omitempty"`
	}

	CatalogView struct {
		Items      []Item   `json:"items"`
		TotalItems int      `json:"total_items"`
		Page       int      `json:"page"`
		PageSize   int      `json:"page_size"`
		Categories []string `json:"categories"`
	}
)

type (
	CartLine struct {
		ItemID   string `json:"item_id"`
		Name     string `json:"name"`
		ImageURL string `json:"image_url"`
		Price    int64  `json:"price"`
		Quantity int    `json:"quantity"`
	}

	CartView struct {
		Lines []CartLine `json:"lines"`
		Total int64      `json:"total"`
	}

	AddCartItem struct {
		ItemID string `json:"item_id"`
	}

	UpdateCartItem struct {
		Quantity int `json:"quantity"`
	}
)

type (
	Credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	Session struct {
		UserID   string `json:"user_id"`
		Username string `json:"username"`
	}
)

type (
	CheckoutRequest struct {
		Recipient string  `json:"recipient"`
		Lat       float64 `json:"lat"`
		Lon       float64 `json:"lon"`
	}

	Order struct {
		ID           string     `json:"id"`
		Recipient    string     `json:"recipient"`
		AddressLabel string     `json:"address_label"`
		Lines        []CartLine `json:"lines"`
		Total        int64      `json:"total"`
		PlacedAt     string     `json:"placed_at"`
	}

	Place struct {
		DisplayName string  `json:"display_name"`
		Lat         float64 `json:"lat"`
		Lon         float64 `json:"lon"`
	}
)
