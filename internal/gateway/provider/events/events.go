// Package events adapts a Ticketmaster Discovery-style upstream into the
// gateway's normalized event records.
package events

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

const DefaultBaseURL = "https://app.ticketmaster.com"

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

type named struct {
	Name *string `json:"name"`
}

type searchPayload struct {
	Embedded *struct {
		Events []eventPayload `json:"events"`
	} `json:"_embedded"`
}

type eventPayload struct {
	Name  *string `json:"name"`
	Dates *struct {
		Start *struct {
			LocalDate *string `json:"localDate"`
		} `json:"start"`
	} `json:"dates"`
	Classifications []struct {
		Segment  *named `json:"segment"`
		Genre    *named `json:"genre"`
		SubGenre *named `json:"subGenre"`
	} `json:"classifications"`
	Embedded *struct {
		Venues []struct {
			Name    *string `json:"name"`
			Address *struct {
				Line1 *string `json:"line1"`
			} `json:"address"`
		} `json:"venues"`
	} `json:"_embedded"`
}

// Search returns upcoming events around a zip code.
func (c *Client) Search(ctx context.Context, zip string) ([]domain.EventRecord, error) {
	log := slogx.FromContext(ctx)

	q := url.Values{}
	q.Set("postalCode", zip)
	q.Set("apikey", c.APIKey)
	endpoint := fmt.Sprintf("%s/discovery/v2/events.json?%s", c.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, provider.ErrNoInformation
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Warn("events upstream unreachable", "err", err)
		return nil, provider.ErrNoInformation
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("events upstream returned non-200", "status", resp.StatusCode)
		return nil, provider.ErrNoInformation
	}

	var p searchPayload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		log.Warn("events response unparseable", "err", err)
		return nil, provider.ErrNoInformation
	}

	if p.Embedded == nil || len(p.Embedded.Events) == 0 {
		return nil, provider.ErrNoInformation
	}

	records := make([]domain.EventRecord, 0, len(p.Embedded.Events))
	for _, e := range p.Embedded.Events {
		rec, err := mapEvent(e)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func mapEvent(e eventPayload) (domain.EventRecord, error) {
	if e.Name == nil || e.Dates == nil || e.Dates.Start == nil || e.Dates.Start.LocalDate == nil ||
		e.Embedded == nil || len(e.Embedded.Venues) == 0 {
		return domain.EventRecord{}, provider.ErrNoInformation
	}

	venue := e.Embedded.Venues[0]
	if venue.Name == nil || venue.Address == nil || venue.Address.Line1 == nil {
		return domain.EventRecord{}, provider.ErrNoInformation
	}

	rec := domain.EventRecord{
		Name:    *e.Name,
		Date:    *e.Dates.Start.LocalDate,
		Venue:   *venue.Name,
		Address: *venue.Address.Line1,
	}

	// When the upstream lists several classification entries the last seen
	// values win.
	for _, cl := range e.Classifications {
		if cl.Segment != nil && cl.Segment.Name != nil {
			rec.Segment = *cl.Segment.Name
		}
		if cl.Genre != nil && cl.Genre.Name != nil {
			rec.Genre = *cl.Genre.Name
		}
		if cl.SubGenre != nil && cl.SubGenre.Name != nil {
			rec.SubGenre = *cl.SubGenre.Name
		}
	}

	return rec, nil
}
