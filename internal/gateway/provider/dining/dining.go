// Package dining adapts a Zomato-style restaurant upstream. The search is a
// two-step dance: the upstream keys restaurants by its own location entity,
// so a search first resolves that entity from city name plus coordinates and
// only then queries restaurants. The second call never runs when the first
// fails.
package dining

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/roamlabs/tripgate/internal/gateway/domain"
	"github.com/roamlabs/tripgate/internal/gateway/provider"
	"github.com/roamlabs/tripgate/pkg/slogx"
)

const DefaultBaseURL = "https://developers.zomato.com/api/v2.1"

type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		APIKey:     apiKey,
		HTTPClient: provider.NewHTTPClient(timeout),
	}
}

type locationPayload struct {
	Suggestions []struct {
		EntityID   *int    `json:"entity_id"`
		EntityType *string `json:"entity_type"`
	} `json:"location_suggestions"`
}

type searchPayload struct {
	Restaurants []struct {
		Restaurant *struct {
			Name     *string `json:"name"`
			Location *struct {
				Address *string `json:"address"`
			} `json:"location"`
			PhoneNumbers *string `json:"phone_numbers"`
			Cuisines     *string `json:"cuisines"`
			PriceRange   *int    `json:"price_range"`
			UserRating   *struct {
				AggregateRating *string `json:"aggregate_rating"`
			} `json:"user_rating"`
		} `json:"restaurant"`
	} `json:"restaurants"`
}

// Search returns restaurants near the given city/coordinates. The location
// entity resolution and the restaurant query are strictly sequential.
func (c *Client) Search(ctx context.Context, city string, lat, lon float64) ([]domain.RestaurantRecord, error) {
	entityID, entityType, err := c.locationEntity(ctx, city, lat, lon)
	if err != nil {
		return nil, err
	}
	return c.restaurants(ctx, entityID, entityType)
}

func (c *Client) locationEntity(ctx context.Context, city string, lat, lon float64) (int, string, error) {
	q := url.Values{}
	q.Set("query", city)
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	var p locationPayload
	if err := c.get(ctx, "/locations", q, &p); err != nil {
		return 0, "", err
	}

	if len(p.Suggestions) == 0 || p.Suggestions[0].EntityID == nil || p.Suggestions[0].EntityType == nil {
		return 0, "", provider.ErrNoInformation
	}
	return *p.Suggestions[0].EntityID, *p.Suggestions[0].EntityType, nil
}

func (c *Client) restaurants(ctx context.Context, entityID int, entityType string) ([]domain.RestaurantRecord, error) {
	q := url.Values{}
	q.Set("entity_id", strconv.Itoa(entityID))
	q.Set("entity_type", entityType)

	var p searchPayload
	if err := c.get(ctx, "/search", q, &p); err != nil {
		return nil, err
	}

	if len(p.Restaurants) == 0 {
		return nil, provider.ErrNoInformation
	}

	records := make([]domain.RestaurantRecord, 0, len(p.Restaurants))
	for _, entry := range p.Restaurants {
		r := entry.Restaurant
		if r == nil || r.Name == nil || r.Location == nil || r.Location.Address == nil ||
			r.PhoneNumbers == nil || r.Cuisines == nil || r.PriceRange == nil ||
			r.UserRating == nil || r.UserRating.AggregateRating == nil {
			return nil, provider.ErrNoInformation
		}

		rating, err := strconv.ParseFloat(*r.UserRating.AggregateRating, 64)
		if err != nil {
			return nil, provider.ErrNoInformation
		}

		records = append(records, domain.RestaurantRecord{
			Name:       *r.Name,
			Address:    *r.Location.Address,
			Phone:      *r.PhoneNumbers,
			Cuisine:    *r.Cuisines,
			PriceScale: *r.PriceRange,
			Rating:     rating,
		})
	}
	return records, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, target any) error {
	log := slogx.FromContext(ctx)

	endpoint := fmt.Sprintf("%s%s?%s", c.BaseURL, path, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return provider.ErrNoInformation
	}
	req.Header.Set("user-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Warn("dining upstream unreachable", "err", err)
		return provider.ErrNoInformation
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("dining upstream returned non-200", "status", resp.StatusCode, "path", path)
		return provider.ErrNoInformation
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		log.Warn("dining response unparseable", "err", err)
		return provider.ErrNoInformation
	}
	return nil
}
