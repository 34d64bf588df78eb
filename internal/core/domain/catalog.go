package domain

type (
	CatalogItem struct {
		ID       string
		Name     string
		Category string
		ImageURL string
		Price    int64
		Tags     []string
	}

	PriceRange struct {
		Min int64
		Max int64
	}

	CatalogView struct {
		Items      []CatalogItem
		TotalItems int
		Page       int
		PageSize   int
		Categories []string
	}
)

type SortOption string

const (
	SortNone      SortOption = ""
	SortPriceAsc  SortOption = "price_asc"
	SortPriceDesc SortOption = "price_desc"
	SortNameAsc   SortOption = "name_asc"
	SortNameDesc  SortOption = "name_desc"
	SortDefault   SortOption = "default"
)

type Place struct {
	DisplayName string
	Lat         float64
	Lon         float64
}
