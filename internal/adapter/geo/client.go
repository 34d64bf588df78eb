// Package geo is the HTTP client for the geocoding collaborator
// (Nominatim-shaped API): forward free-text search and reverse
// coordinate lookup, used by the checkout address picker.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.Geocoder = (*Client)(nil)

type (
	searchResult struct {
		DisplayName string `json:"display_name"`
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
	}

	reverseResult struct {
		DisplayName string `json:"display_name"`
	}
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) Client {
	return Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// Search resolves free text to candidate places. The provider encodes
// coordinates as strings; results with unparseable coordinates are
// skipped.
func (c Client) Search(ctx context.Context, query string) ([]domain.Place, error) {
	const op = "geo.Client.Search"

	u := c.baseURL + "/search?format=json&q=" + url.QueryEscape(query)

	var results []searchResult
	if err := c.getJSON(ctx, u, &results); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var places []domain.Place
	for _, r := range results {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lon, lonErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		places = append(places, domain.Place{
			DisplayName: r.DisplayName,
			Lat:         lat,
			Lon:         lon,
		})
	}
	return places, nil
}

// Reverse resolves coordinates to a display name. Callers degrade to
// a coordinate-only label on error.
func (c Client) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	const op = "geo.Client.Reverse"

	u := fmt.Sprintf("%s/reverse?format=jsonv2&lat=%s&lon=%s",
		c.baseURL,
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64),
	)

	var result reverseResult
	if err := c.getJSON(ctx, u, &result); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if result.DisplayName == "" {
		return "", fmt.Errorf("%s: empty display name", op)
	}
	return result.DisplayName, nil
}

func (c Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
