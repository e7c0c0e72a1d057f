// Package lodging adapts an OpenTripMap-style places upstream. Nearby search
// is keyed by coordinates with a fixed radius; address detail is a separate
// per-place lookup keyed by the upstream's xid.
package lodging

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

const DefaultBaseURL = "https://api.opentripmap.com"

// SearchRadiusMeters is the fixed nearby-search radius (roughly 15 miles).
const SearchRadiusMeters = 24140

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

type radiusPayload struct {
	Features []struct {
		Properties *struct {
			Name *string `json:"name"`
			Rate *string `json:"rate"`
			XID  *string `json:"xid"`
		} `json:"properties"`
	} `json:"features"`
}

type detailPayload struct {
	Address *struct {
		HouseNumber *string `json:"house_number"`
		Road        *string `json:"road"`
		City        *string `json:"city"`
	} `json:"address"`
}

// Nearby returns lodging around the given coordinates. Entries the upstream
// leaves unnamed are skipped; an entirely unusable response fails whole.
func (c *Client) Nearby(ctx context.Context, lat, lon float64) ([]domain.HotelRecord, error) {
	q := url.Values{}
	q.Set("radius", strconv.Itoa(SearchRadiusMeters))
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("kinds", "accomodations")
	q.Set("format", "geojson")
	q.Set("apikey", c.APIKey)

	var p radiusPayload
	if err := c.get(ctx, "/0.1/en/places/radius", q, &p); err != nil {
		return nil, err
	}

	if len(p.Features) == 0 {
		return nil, provider.ErrNoInformation
	}

	records := make([]domain.HotelRecord, 0, len(p.Features))
	for _, f := range p.Features {
		props := f.Properties
		if props == nil || props.Name == nil || props.Rate == nil || props.XID == nil {
			return nil, provider.ErrNoInformation
		}
		if *props.Name == "" {
			continue // unnamed places are noise, not an upstream fault
		}
		records = append(records, domain.HotelRecord{
			Name:   *props.Name,
			Rating: *props.Rate,
			XID:    *props.XID,
		})
	}

	if len(records) == 0 {
		return nil, provider.ErrNoInformation
	}
	return records, nil
}

// Detail resolves the address for one lodging entry by its xid.
func (c *Client) Detail(ctx context.Context, xid string) (domain.HotelDetail, error) {
	q := url.Values{}
	q.Set("apikey", c.APIKey)

	var p detailPayload
	if err := c.get(ctx, "/0.1/en/places/xid/"+url.PathEscape(xid), q, &p); err != nil {
		return domain.HotelDetail{}, err
	}

	a := p.Address
	if a == nil || a.HouseNumber == nil || a.Road == nil || a.City == nil {
		return domain.HotelDetail{}, provider.ErrNoInformation
	}

	return domain.HotelDetail{
		HouseNumber: *a.HouseNumber,
		Street:      *a.Road,
		City:        *a.City,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, target any) error {
	log := slogx.FromContext(ctx)

	endpoint := fmt.Sprintf("%s%s?%s", c.BaseURL, path, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return provider.ErrNoInformation
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Warn("lodging upstream unreachable", "err", err)
		return provider.ErrNoInformation
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("lodging upstream returned non-200", "status", resp.StatusCode, "path", path)
		return provider.ErrNoInformation
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		log.Warn("lodging response unparseable", "err", err)
		return provider.ErrNoInformation
	}
	return nil
}
