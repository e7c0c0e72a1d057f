// Package weather adapts an OpenWeatherMap-compatible upstream into the
// gateway's normalized weather records. It also exposes the coordinate
// lookup the dining and lodging adapters piggyback on, since the upstream
// returns lat/lon alongside every zip-keyed observation.
package weather

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

const DefaultBaseURL = "https://api.openweathermap.org"

// ForecastEntries caps how many forecast timestamps are returned, matching
// the five-day view the API exposes.
const ForecastEntries = 5

const dateLayout = "2006-01-02 15:04"

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

// Coordinates is the lat/lon pair (plus resolved city name) for a zip code.
type Coordinates struct {
	Lat  float64
	Lon  float64
	City string
}

type conditionsPayload struct {
	Name *string `json:"name"`
	Dt   *int64  `json:"dt"`
	Main *struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description *string `json:"description"`
	} `json:"weather"`
	Coord *struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	} `json:"coord"`
}

type forecastPayload struct {
	City *struct {
		Name *string `json:"name"`
	} `json:"city"`
	List []struct {
		Dt   *int64 `json:"dt"`
		Main *struct {
			Temp *float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description *string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

// Current returns the present conditions for a zip code.
func (c *Client) Current(ctx context.Context, zip string) (domain.WeatherRecord, error) {
	var p conditionsPayload
	if err := c.get(ctx, "/data/2.5/weather", zip, &p); err != nil {
		return domain.WeatherRecord{}, err
	}

	rec, err := mapConditions(p)
	if err != nil {
		return domain.WeatherRecord{}, err
	}
	return rec, nil
}

// Forecast returns upcoming per-timestamp entries for a zip code, capped at
// ForecastEntries.
func (c *Client) Forecast(ctx context.Context, zip string) ([]domain.WeatherRecord, error) {
	var p forecastPayload
	if err := c.get(ctx, "/data/2.5/forecast", zip, &p); err != nil {
		return nil, err
	}

	if p.City == nil || p.City.Name == nil || len(p.List) == 0 {
		return nil, provider.ErrNoInformation
	}

	entries := p.List
	if len(entries) > ForecastEntries {
		entries = entries[:ForecastEntries]
	}

	records := make([]domain.WeatherRecord, 0, len(entries))
	for _, e := range entries {
		if e.Dt == nil || e.Main == nil || e.Main.Temp == nil || len(e.Weather) == 0 || e.Weather[0].Description == nil {
			return nil, provider.ErrNoInformation
		}
		records = append(records, domain.WeatherRecord{
			City:        *p.City.Name,
			Date:        time.Unix(*e.Dt, 0).UTC().Format(dateLayout),
			Temperature: *e.Main.Temp,
			Description: *e.Weather[0].Description,
		})
	}
	return records, nil
}

// Lookup returns the coordinates and city name the upstream associates with
// a zip code. The dining and lodging adapters key their own searches off it.
func (c *Client) Lookup(ctx context.Context, zip string) (Coordinates, error) {
	var p conditionsPayload
	if err := c.get(ctx, "/data/2.5/weather", zip, &p); err != nil {
		return Coordinates{}, err
	}

	if p.Name == nil || p.Coord == nil || p.Coord.Lat == nil || p.Coord.Lon == nil {
		return Coordinates{}, provider.ErrNoInformation
	}
	return Coordinates{Lat: *p.Coord.Lat, Lon: *p.Coord.Lon, City: *p.Name}, nil
}

func (c *Client) get(ctx context.Context, path, zip string, target any) error {
	log := slogx.FromContext(ctx)

	q := url.Values{}
	q.Set("zip", zip)
	q.Set("units", "imperial")
	q.Set("appid", c.APIKey)
	endpoint := fmt.Sprintf("%s%s?%s", c.BaseURL, path, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return provider.ErrNoInformation
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Warn("weather upstream unreachable", "err", err)
		return provider.ErrNoInformation
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("weather upstream returned non-200", "status", resp.StatusCode, "path", path)
		return provider.ErrNoInformation
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		log.Warn("weather response unparseable", "err", err)
		return provider.ErrNoInformation
	}
	return nil
}

func mapConditions(p conditionsPayload) (domain.WeatherRecord, error) {
	if p.Name == nil || p.Dt == nil || p.Main == nil || p.Main.Temp == nil ||
		len(p.Weather) == 0 || p.Weather[0].Description == nil {
		return domain.WeatherRecord{}, provider.ErrNoInformation
	}

	return domain.WeatherRecord{
		City:        *p.Name,
		Date:        time.Unix(*p.Dt, 0).UTC().Format(dateLayout),
		Temperature: *p.Main.Temp,
		Description: *p.Weather[0].Description,
	}, nil
}
