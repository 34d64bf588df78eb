// Package catalogsource is the read-only HTTP client for the external
// catalog provider. The provider speaks a recipe-API dialect: items
// arrive as "meals" and a null list means an empty catalog. Prices are
// not part of the payload; the query engine backfills them.
package catalogsource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogSource = (*Client)(nil)

type (
	meal struct {
		IDMeal       string `json:"idMeal"`
		StrMeal      string `json:"strMeal"`
		StrCategory  string `json:"strCategory"`
		StrMealThumb string `json:"strMealThumb"`
		StrTags      string `json:"strTags"`
	}

	mealsResponse struct {
		Meals []meal `json:"meals"`
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

// FetchItems pulls the full item set in one request. No retry: a
// failure surfaces immediately as an error for the caller to keep as
// its load-error state.
func (c Client) FetchItems(ctx context.Context) ([]domain.CatalogItem, error) {
	const op = "catalogsource.Client.FetchItems"

	url := c.baseURL + "/search.php?s="
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %s", op, resp.Status)
	}

	var payload mealsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items := make([]domain.CatalogItem, 0, len(payload.Meals))
	for _, m := range payload.Meals {
		items = append(items, domain.CatalogItem{
			ID:       m.IDMeal,
			Name:     m.StrMeal,
			Category: m.StrCategory,
			ImageURL: m.StrMealThumb,
			Tags:     splitTags(m.StrTags),
		})
	}
	return items, nil
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
