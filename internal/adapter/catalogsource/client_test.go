package catalogsource_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/internal/adapter/catalogsource"
)

func TestFetchItems(t *testing.T) {
	t.Run("MapsProviderPayload", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/search.php", r.URL.Path)
				assert.Equal(t, "", r.URL.Query().Get("s"))
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"meals":[
					{"idMeal":"52771","strMeal":"Arrabiata","strCategory":"Pasta",
					 "strMealThumb":"https://img.test/arrabiata.jpg",
					 "strTags":"Pasta, Spicy"},
					{"idMeal":"52874","strMeal":"Beef Wellington","strCategory":"Beef",
					 "strMealThumb":"https://img.test/wellington.jpg","strTags":""}
				]}`))
			}))
		defer ts.Close()

		items, err := catalogsource.NewClient(ts.URL).FetchItems(t.Context())
		require.NoError(t, err)
		require.Len(t, items, 2)

		assert.Equal(t, "52771", items[0].ID)
		assert.Equal(t, "Arrabiata", items[0].Name)
		assert.Equal(t, "Pasta", items[0].Category)
		assert.Equal(t, "https://img.test/arrabiata.jpg", items[0].ImageURL)
		assert.Equal(t, []string{"Pasta", "Spicy"}, items[0].Tags)
		assert.Zero(t, items[0].Price)

		assert.Empty(t, items[1].Tags)
	})

	t.Run("NullMealsIsEmptyCatalog", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"meals":null}`))
			}))
		defer ts.Close()

		items, err := catalogsource.NewClient(ts.URL).FetchItems(t.Context())
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("NonOKStatusIsError", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", http.StatusBadGateway)
			}))
		defer ts.Close()

		_, err := catalogsource.NewClient(ts.URL).FetchItems(t.Context())
		assert.Error(t, err)
	})
}
