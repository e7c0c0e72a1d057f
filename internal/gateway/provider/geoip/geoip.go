// Package geoip resolves a network address into a geographic anchor using a
// freegeoip-compatible JSON endpoint.
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/roamlabs/tripgate/internal/gateway/domain"
	"github.com/roamlabs/tripgate/internal/gateway/provider"
	"github.com/roamlabs/tripgate/pkg/slogx"
)

const DefaultBaseURL = "https://freegeoip.app"

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: provider.NewHTTPClient(timeout),
	}
}

// payload is the subset of the upstream response we rely on. ZipCode must be
// present and non-empty or the lookup is useless to the gateway.
type payload struct {
	ZipCode     *string `json:"zip_code"`
	City        string  `json:"city"`
	CountryName string  `json:"country_name"`
}

// Lookup resolves ip into a LocationContext with Source set to ip-derived.
// Any upstream failure or a response without a zip code fails with
// ErrNoInformation; there are no retries.
func (c *Client) Lookup(ctx context.Context, ip string) (domain.LocationContext, error) {
	log := slogx.FromContext(ctx)

	endpoint := fmt.Sprintf("%s/json/%s", c.BaseURL, url.PathEscape(ip))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.LocationContext{}, provider.ErrNoInformation
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Warn("geoip lookup failed", "err", err)
		return domain.LocationContext{}, provider.ErrNoInformation
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("geoip lookup returned non-200", "status", resp.StatusCode)
		return domain.LocationContext{}, provider.ErrNoInformation
	}

	var p payload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		log.Warn("geoip response unparseable", "err", err)
		return domain.LocationContext{}, provider.ErrNoInformation
	}

	if p.ZipCode == nil || *p.ZipCode == "" {
		return domain.LocationContext{}, provider.ErrNoInformation
	}

	return domain.LocationContext{
		Zip:     *p.ZipCode,
		City:    p.City,
		Country: p.CountryName,
		Source:  domain.SourceIPDerived,
	}, nil
}
