package service

import (
	"cmp"
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogBrowser = (*CatalogService)(nil)

// CatalogConfig bounds the deterministic price backfill and sets the
// initial page size.
type CatalogConfig struct {
	PriceFillMin int64
	PriceFillMax int64
	PageSize     int
}

// CatalogService holds the full item set fetched from the catalog
// source and a filtered/sorted/paginated view of it. Every parameter
// mutation recomputes the whole derived pipeline synchronously:
// filter (search, then category, then price, always against the full
// item set), then sort, then page slice.
type CatalogService struct {
	mu     sync.Mutex
	source port.CatalogSource
	cfg    CatalogConfig
	coll   *collate.Collator

	items      []domain.CatalogItem
	categories []string

	searchTerm       string
	selectedCategory string
	priceRange       domain.PriceRange
	sortOption       domain.SortOption
	currentPage      int
	pageSize         int

	filtered  []domain.CatalogItem
	displayed []domain.CatalogItem

	loadErr error
}

func NewCatalogService(source port.CatalogSource, cfg CatalogConfig) *CatalogService {
	s := &CatalogService{
		source: source,
		cfg:    cfg,
		coll:   collate.New(language.English),
	}
	s.resetQueryState()
	return s
}

// Refresh replaces the item set from the catalog source. On failure
// the item set is cleared and the error is retained as the engine
// load-error state, so readers see an explicit error instead of
// stale data.
func (s *CatalogService) Refresh(ctx context.Context) error {
	const op = "CatalogService.Refresh"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	items, err := s.source.FetchItems(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.loadErr = fmt.Errorf("%s: %w: %w", op, domain.ErrCatalogUnavailable, err)
		s.setItems(nil)
		return s.loadErr
	}

	s.loadErr = nil
	s.setItems(items)
	return nil
}

// Browse applies a partial parameter update and returns the
// recomputed view. Nil query fields leave current parameters as they
// are.
func (s *CatalogService) Browse(
	ctx context.Context, q port.CatalogQuery,
) (domain.CatalogView, error) {
	const op = "CatalogService.Browse"

	if err := ctx.Err(); err != nil {
		return domain.CatalogView{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadErr != nil {
		return domain.CatalogView{}, s.loadErr
	}

	if q.SearchTerm != nil {
		s.setSearchTerm(*q.SearchTerm)
	}
	if q.SelectedCategory != nil {
		s.setSelectedCategory(*q.SelectedCategory)
	}
	if q.PriceMin != nil || q.PriceMax != nil {
		pr := s.priceRange
		if q.PriceMin != nil {
			pr.Min = *q.PriceMin
		}
		if q.PriceMax != nil {
			pr.Max = *q.PriceMax
		}
		s.setPriceRange(pr)
	}
	if q.Sort != nil {
		s.setSortOption(*q.Sort)
	}
	if q.PageSize != nil {
		s.setPageSize(*q.PageSize)
	}
	if q.Page != nil {
		s.setCurrentPage(*q.Page)
	}

	return s.view(), nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	const op = "CatalogService.Categories"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return slices.Clone(s.categories), nil
}

// Item looks an item up in the full (unfiltered) set.
func (s *CatalogService) Item(
	ctx context.Context, itemID string,
) (domain.CatalogItem, error) {
	const op = "CatalogService.Item"

	if err := ctx.Err(); err != nil {
		return domain.CatalogItem{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.items {
		if it.ID == itemID {
			return it, nil
		}
	}
	return domain.CatalogItem{}, fmt.Errorf("%s: %w", op, domain.ErrItemNotFound)
}

// --- state mutation, caller holds s.mu ---

func (s *CatalogService) resetQueryState() {
	s.searchTerm = ""
	s.selectedCategory = ""
	s.priceRange = domain.PriceRange{Min: 0, Max: math.MaxInt64}
	s.sortOption = domain.SortNone
	s.currentPage = 1
	s.pageSize = s.cfg.PageSize
	if s.pageSize < 1 {
		s.pageSize = 1
	}
}

func (s *CatalogService) setItems(items []domain.CatalogItem) {
	s.items = make([]domain.CatalogItem, len(items))
	for i, it := range items {
		if it.Price == 0 {
			it.Price = s.fillPrice(it.ID)
		}
		s.items[i] = it
	}
	s.categories = deriveCategories(s.items)
	s.resetQueryState()
	s.applyFilters()
}

// fillPrice substitutes a deterministic filler derived from the item
// id, so repeated loads of the same catalog price items identically.
func (s *CatalogService) fillPrice(itemID string) int64 {
	min, max := s.cfg.PriceFillMin, s.cfg.PriceFillMax
	if max <= min {
		return min
	}
	h := fnv.New32a()
	h.Write([]byte(itemID))
	return min + int64(h.Sum32())%(max-min)
}

func (s *CatalogService) setSearchTerm(term string) {
	s.searchTerm = term
	s.currentPage = 1
	s.applyFilters()
}

func (s *CatalogService) setSelectedCategory(category string) {
	s.selectedCategory = category
	s.currentPage = 1
	s.applyFilters()
}

func (s *CatalogService) setPriceRange(pr domain.PriceRange) {
	s.priceRange = pr
	s.currentPage = 1
	s.applyFilters()
}

func (s *CatalogService) setSortOption(opt domain.SortOption) {
	s.sortOption = opt
	s.applySorting()
}

func (s *CatalogService) setCurrentPage(page int) {
	if page < 1 {
		page = 1
	}
	s.currentPage = page
	s.applyPagination()
}

func (s *CatalogService) setPageSize(size int) {
	if size < 1 {
		size = 1
	}
	s.pageSize = size
	s.currentPage = 1
	s.applyPagination()
}

// applyFilters recomputes the filtered set from the full item set,
// then reapplies sort and pagination. Fixed order: search, category,
// price. Each run starts from s.items, never from the previous
// filtered output.
func (s *CatalogService) applyFilters() {
	s.filtered = s.filterItems()
	s.applySorting()
}

func (s *CatalogService) filterItems() []domain.CatalogItem {
	term := strings.ToLower(s.searchTerm)
	var out []domain.CatalogItem
	for _, it := range s.items {
		if term != "" && !strings.Contains(strings.ToLower(it.Name), term) {
			continue
		}
		if s.selectedCategory != "" && it.Category != s.selectedCategory {
			continue
		}
		if it.Price < s.priceRange.Min || it.Price > s.priceRange.Max {
			continue
		}
		out = append(out, it)
	}
	return out
}

// applySorting orders the filtered set. Sorts are stable, so equal
// prices keep source order. SortDefault re-derives the filtered set
// from the full items unsorted instead of re-sorting.
func (s *CatalogService) applySorting() {
	switch s.sortOption {
	case domain.SortPriceAsc:
		slices.SortStableFunc(s.filtered, func(a, b domain.CatalogItem) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case domain.SortPriceDesc:
		slices.SortStableFunc(s.filtered, func(a, b domain.CatalogItem) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case domain.SortNameAsc:
		slices.SortStableFunc(s.filtered, func(a, b domain.CatalogItem) int {
			return s.coll.CompareString(a.Name, b.Name)
		})
	case domain.SortNameDesc:
		slices.SortStableFunc(s.filtered, func(a, b domain.CatalogItem) int {
			return s.coll.CompareString(b.Name, a.Name)
		})
	case domain.SortDefault:
		s.filtered = s.filterItems()
	}
	s.applyPagination()
}

func (s *CatalogService) applyPagination() {
	start := (s.currentPage - 1) * s.pageSize
	if start >= len(s.filtered) {
		s.displayed = nil
		return
	}
	end := min(start+s.pageSize, len(s.filtered))
	s.displayed = s.filtered[start:end]
}

func (s *CatalogService) view() domain.CatalogView {
	return domain.CatalogView{
		Items:      slices.Clone(s.displayed),
		TotalItems: len(s.filtered),
		Page:       s.currentPage,
		PageSize:   s.pageSize,
		Categories: slices.Clone(s.categories),
	}
}

func deriveCategories(items []domain.CatalogItem) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, it := range items {
		if it.Category == "" {
			continue
		}
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	return out
}
