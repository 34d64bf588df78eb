package geo_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/internal/adapter/geo"
)

func TestSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "json", r.URL.Query().Get("format"))
			assert.Equal(t, "azadi tower", r.URL.Query().Get("q"))
			w.Write([]byte(`[
				{"display_name":"Azadi Tower, Tehran","lat":"35.6892","lon":"51.3890"},
				{"display_name":"broken","lat":"not-a-number","lon":"0"}
			]`))
		}))
	defer ts.Close()

	places, err := geo.NewClient(ts.URL).Search(t.Context(), "azadi tower")
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Azadi Tower, Tehran", places[0].DisplayName)
	assert.InDelta(t, 35.6892, places[0].Lat, 1e-9)
	assert.InDelta(t, 51.389, places[0].Lon, 1e-9)
}

func TestReverse(t *testing.T) {
	t.Run("ReturnsDisplayName", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/reverse", r.URL.Path)
				assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
				assert.Equal(t, "35.6892", r.URL.Query().Get("lat"))
				w.Write([]byte(`{"display_name":"Azadi Tower, Tehran"}`))
			}))
		defer ts.Close()

		name, err := geo.NewClient(ts.URL).Reverse(t.Context(), 35.6892, 51.389)
		require.NoError(t, err)
		assert.Equal(t, "Azadi Tower, Tehran", name)
	})

	t.Run("EmptyDisplayNameIsError", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{}`))
			}))
		defer ts.Close()

		_, err := geo.NewClient(ts.URL).Reverse(t.Context(), 0, 0)
		assert.Error(t, err)
	})
}
