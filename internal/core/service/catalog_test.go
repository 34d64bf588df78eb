package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
)

type MockCatalogSource struct {
	mock.Mock
}

func (m *MockCatalogSource) FetchItems(ctx context.Context) ([]domain.CatalogItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]domain.CatalogItem)
	return items, args.Error(1)
}

func ptr[T any](v T) *T { return &v }

func testItems() []domain.CatalogItem {
	return []domain.CatalogItem{
		{ID: "1", Name: "Arrabiata", Category: "Pasta", Price: 300},
		{ID: "2", Name: "Beef Wellington", Category: "Beef", Price: 900},
		{ID: "3", Name: "Carbonara", Category: "Pasta", Price: 500},
		{ID: "4", Name: "Apple Frangipan Tart", Category: "Dessert", Price: 300},
		{ID: "5", Name: "Banana Pancakes", Category: "Dessert", Price: 200},
		{ID: "6", Name: "Beef Stroganoff", Category: "Beef", Price: 700},
		{ID: "7", Name: "Chicken Couscous", Category: "Chicken", Price: 400},
	}
}

func newCatalog(t *testing.T, items []domain.CatalogItem) *service.CatalogService {
	t.Helper()

	source := new(MockCatalogSource)
	source.On("FetchItems", mock.Anything).Return(items, nil)

	s := service.NewCatalogService(source, service.CatalogConfig{
		PriceFillMin: 10000, PriceFillMax: 60000, PageSize: 3,
	})
	require.NoError(t, s.Refresh(t.Context()))
	return s
}

func itemIDs(items []domain.CatalogItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func TestCatalogRefresh(t *testing.T) {
	t.Run("BackfillsMissingPriceDeterministically", func(t *testing.T) {
		items := []domain.CatalogItem{
			{ID: "10", Name: "Dal Fry", Category: "Vegetarian"},
			{ID: "11", Name: "Kedgeree", Category: "Seafood", Price: 777},
		}
		s := newCatalog(t, items)

		v, err := s.Browse(t.Context(), port.CatalogQuery{})
		require.NoError(t, err)
		require.Len(t, v.Items, 2)

		filled := v.Items[0].Price
		assert.GreaterOrEqual(t, filled, int64(10000))
		assert.Less(t, filled, int64(60000))
		assert.Equal(t, int64(777), v.Items[1].Price)

		// same id fills the same price on every load
		s2 := newCatalog(t, items)
		v2, err := s2.Browse(t.Context(), port.CatalogQuery{})
		require.NoError(t, err)
		assert.Equal(t, filled, v2.Items[0].Price)
	})

	t.Run("SourceFailureLeavesErrorState", func(t *testing.T) {
		source := new(MockCatalogSource)
		source.On("FetchItems", mock.Anything).Return(nil, errors.New("boom"))

		s := service.NewCatalogService(source, service.CatalogConfig{
			PriceFillMin: 10000, PriceFillMax: 60000, PageSize: 3,
		})
		err := s.Refresh(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)

		_, err = s.Browse(t.Context(), port.CatalogQuery{})
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)

		_, err = s.Categories(t.Context())
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	})

	t.Run("DerivesCategoriesInSourceOrder", func(t *testing.T) {
		s := newCatalog(t, testItems())
		cats, err := s.Categories(t.Context())
		require.NoError(t, err)
		assert.Equal(t, []string{"Pasta", "Beef", "Dessert", "Chicken"}, cats)
	})
}

func TestCatalogFiltering(t *testing.T) {
	t.Run("SearchIsCaseInsensitiveSubstring", func(t *testing.T) {
		s := newCatalog(t, testItems())
		v, err := s.Browse(t.Context(), port.CatalogQuery{SearchTerm: ptr("beef")})
		require.NoError(t, err)
		assert.Equal(t, 2, v.TotalItems)
		assert.Equal(t, []string{"2", "6"}, itemIDs(v.Items))
	})

	t.Run("CategoryIsExactMatchAndEmptyMeansNoFilter", func(t *testing.T) {
		s := newCatalog(t, testItems())

		v, err := s.Browse(t.Context(), port.CatalogQuery{SelectedCategory: ptr("Pasta")})
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "3"}, itemIDs(v.Items))

		v, err = s.Browse(t.Context(), port.CatalogQuery{SelectedCategory: ptr("")})
		require.NoError(t, err)
		assert.Equal(t, 7, v.TotalItems)
	})

	t.Run("PriceRangeBoundsAreInclusive", func(t *testing.T) {
		s := newCatalog(t, testItems())
		v, err := s.Browse(t.Context(), port.CatalogQuery{
			PriceMin: ptr(int64(300)), PriceMax: ptr(int64(500)),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "3", "4", "7"}, itemIDs(v.Items))
	})

	t.Run("FiltersComposeIndependentOfCallOrder", func(t *testing.T) {
		a := newCatalog(t, testItems())
		_, err := a.Browse(t.Context(), port.CatalogQuery{SearchTerm: ptr("be")})
		require.NoError(t, err)
		va, err := a.Browse(t.Context(), port.CatalogQuery{SelectedCategory: ptr("Beef")})
		require.NoError(t, err)

		b := newCatalog(t, testItems())
		_, err = b.Browse(t.Context(), port.CatalogQuery{SelectedCategory: ptr("Beef")})
		require.NoError(t, err)
		vb, err := b.Browse(t.Context(), port.CatalogQuery{SearchTerm: ptr("be")})
		require.NoError(t, err)

		assert.Equal(t, itemIDs(va.Items), itemIDs(vb.Items))
	})

	t.Run("FilterChangeResetsPageToFirst", func(t *testing.T) {
		s := newCatalog(t, testItems())
		v, err := s.Browse(t.Context(), port.CatalogQuery{Page: ptr(2)})
		require.NoError(t, err)
		require.Equal(t, 2, v.Page)

		v, err = s.Browse(t.Context(), port.CatalogQuery{SearchTerm: ptr("a")})
		require.NoError(t, err)
		assert.Equal(t, 1, v.Page)

		v, err = s.Browse(t.Context(), port.CatalogQuery{Page: ptr(2)})
		require.NoError(t, err)
		v, err = s.Browse(t.Context(), port.CatalogQuery{PriceMin: ptr(int64(0))})
		require.NoError(t, err)
		assert.Equal(t, 1, v.Page)
	})
}

func TestCatalogSorting(t *testing.T) {
	t.Run("PriceSortIsStableForEqualPrices", func(t *testing.T) {
		s := newCatalog(t, testItems())
		v, err := s.Browse(t.Context(), port.CatalogQuery{
			Sort: ptr(domain.SortPriceAsc), PageSize: ptr(10),
		})
		require.NoError(t, err)
		// items 1 and 4 share price 300 and must keep source order
		assert.Equal(t, []string{"5", "1", "4", "7", "3", "6", "2"}, itemIDs(v.Items))
	})

	t.Run("NameSortDescending", func(t *testing.T) {
		s := newCatalog(t, testItems())
		v, err := s.Browse(t.Context(), port.CatalogQuery{
			Sort: ptr(domain.SortNameDesc), PageSize: ptr(10),
		})
		require.NoError(t, err)
		assert.Equal(t, "Chicken Couscous", v.Items[0].Name)
		assert.Equal(t, "Apple Frangipan Tart", v.Items[len(v.Items)-1].Name)
	})

	t.Run("SortDoesNotResetPage", func(t *testing.T) {
		s := newCatalog(t, testItems())
		v, err := s.Browse(t.Context(), port.CatalogQuery{Page: ptr(2)})
		require.NoError(t, err)
		require.Equal(t, 2, v.Page)

		v, err = s.Browse(t.Context(), port.CatalogQuery{Sort: ptr(domain.SortPriceDesc)})
		require.NoError(t, err)
		assert.Equal(t, 2, v.Page)
	})

	t.Run("DefaultRestoresFilteredUnsortedOrder", func(t *testing.T) {
		s := newCatalog(t, testItems())
		before, err := s.Browse(t.Context(), port.CatalogQuery{
			SelectedCategory: ptr("Pasta"), PageSize: ptr(10),
		})
		require.NoError(t, err)
		require.Equal(t, []string{"1", "3"}, itemIDs(before.Items))

		mid, err := s.Browse(t.Context(), port.CatalogQuery{Sort: ptr(domain.SortPriceDesc)})
		require.NoError(t, err)
		require.Equal(t, []string{"3", "1"}, itemIDs(mid.Items))

		after, err := s.Browse(t.Context(), port.CatalogQuery{Sort: ptr(domain.SortDefault)})
		require.NoError(t, err)
		assert.Equal(t, itemIDs(before.Items), itemIDs(after.Items))
	})
}

func TestCatalogPagination(t *testing.T) {
	t.Run("PagesPartitionTheFilteredSet", func(t *testing.T) {
		s := newCatalog(t, testItems())

		var all []string
		for page := 1; ; page++ {
			v, err := s.Browse(t.Context(), port.CatalogQuery{Page: ptr(page)})
			require.NoError(t, err)
			if len(v.Items) == 0 {
				break
			}
			assert.LessOrEqual(t, len(v.Items), v.PageSize)
			all = append(all, itemIDs(v.Items)...)
		}
		assert.Equal(t, itemIDs(testItems()), all)
	})

	t.Run("PageBeyondEndIsEmpty", func(t *testing.T) {
		s := newCatalog(t, testItems())
		v, err := s.Browse(t.Context(), port.CatalogQuery{Page: ptr(42)})
		require.NoError(t, err)
		assert.Empty(t, v.Items)
		assert.Equal(t, 7, v.TotalItems)
	})

	t.Run("PageSizeChangeResetsPage", func(t *testing.T) {
		s := newCatalog(t, testItems())
		_, err := s.Browse(t.Context(), port.CatalogQuery{Page: ptr(2)})
		require.NoError(t, err)

		v, err := s.Browse(t.Context(), port.CatalogQuery{PageSize: ptr(5)})
		require.NoError(t, err)
		assert.Equal(t, 1, v.Page)
		assert.Len(t, v.Items, 5)
	})
}

func TestCatalogItem(t *testing.T) {
	s := newCatalog(t, testItems())

	it, err := s.Item(t.Context(), "3")
	require.NoError(t, err)
	assert.Equal(t, "Carbonara", it.Name)

	_, err = s.Item(t.Context(), "nope")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}
