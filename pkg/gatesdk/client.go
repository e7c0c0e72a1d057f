package gatesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a typed client for the trip gateway. Unauthenticated operations
// hang off the Client; anything needing a bearer token takes it explicitly so
// callers stay in control of which token (access or refresh) is presented.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Credentials is the username/password body the account endpoints accept.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TripQuery carries the optional explicit zip code for resource lookups.
type TripQuery struct {
	ZipCode string
}

func (q TripQuery) encode() string {
	if q.ZipCode == "" {
		return ""
	}
	v := url.Values{}
	v.Set("zipcode", q.ZipCode)
	return "?" + v.Encode()
}

// Welcome fetches the unauthenticated greeting from the root route.
func (c *Client) Welcome(ctx context.Context) (MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, http.MethodGet, "/", "", nil, &out)
	return out, err
}

// Register creates an account and returns the first token pair. A duplicate
// username comes back as a plain message with empty tokens, not an error.
func (c *Client) Register(ctx context.Context, creds Credentials) (TokenResponse, error) {
	var out TokenResponse
	err := c.do(ctx, http.MethodPost, "/registration", "", creds, &out)
	return out, err
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, creds Credentials) (TokenResponse, error) {
	var out TokenResponse
	err := c.do(ctx, http.MethodPost, "/login", "", creds, &out)
	return out, err
}

// Refresh mints a new access token off a refresh token. The refresh token
// itself stays valid.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (RefreshResponse, error) {
	var out RefreshResponse
	err := c.do(ctx, http.MethodPost, "/token/refresh", refreshToken, nil, &out)
	return out, err
}

// LogoutAccess revokes the presented access token.
func (c *Client) LogoutAccess(ctx context.Context, accessToken string) (MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, http.MethodPost, "/logout/access", accessToken, nil, &out)
	return out, err
}

// LogoutRefresh revokes the presented refresh token.
func (c *Client) LogoutRefresh(ctx context.Context, refreshToken string) (MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, http.MethodPost, "/logout/refresh", refreshToken, nil, &out)
	return out, err
}

// Users lists every registered username.
func (c *Client) Users(ctx context.Context) (UsersResponse, error) {
	var out UsersResponse
	err := c.do(ctx, http.MethodGet, "/users", "", nil, &out)
	return out, err
}

// LocationByIP fetches the location the gateway derives from the caller's
// network address. Unlike the other trip calls it never takes a zip code.
func (c *Client) LocationByIP(ctx context.Context, accessToken string) (Location, error) {
	var out Location
	err := c.do(ctx, http.MethodGet, "/locationByIp", accessToken, nil, &out)
	return out, err
}

// Weather fetches current conditions for the query's location.
func (c *Client) Weather(ctx context.Context, accessToken string, q TripQuery) (Weather, error) {
	var out Weather
	err := c.do(ctx, http.MethodGet, "/weather"+q.encode(), accessToken, nil, &out)
	return out, err
}

// FiveDay fetches the capped forecast for the query's location.
func (c *Client) FiveDay(ctx context.Context, accessToken string, q TripQuery) ([]Weather, error) {
	var out []Weather
	err := c.do(ctx, http.MethodGet, "/fiveday"+q.encode(), accessToken, nil, &out)
	return out, err
}

// Restaurants fetches dining options near the query's location.
func (c *Client) Restaurants(ctx context.Context, accessToken string, q TripQuery) ([]Restaurant, error) {
	var out []Restaurant
	err := c.do(ctx, http.MethodGet, "/restaurants"+q.encode(), accessToken, nil, &out)
	return out, err
}

// Events fetches upcoming events near the query's location.
func (c *Client) Events(ctx context.Context, accessToken string, q TripQuery) ([]Event, error) {
	var out []Event
	err := c.do(ctx, http.MethodGet, "/events"+q.encode(), accessToken, nil, &out)
	return out, err
}

// Hotels fetches lodging near the query's location.
func (c *Client) Hotels(ctx context.Context, accessToken string, q TripQuery) ([]Hotel, error) {
	var out []Hotel
	err := c.do(ctx, http.MethodGet, "/hotels"+q.encode(), accessToken, nil, &out)
	return out, err
}

// Hotel fetches the address detail for one lodging entry by xid.
func (c *Client) Hotel(ctx context.Context, accessToken, xid string) (HotelDetail, error) {
	var out HotelDetail
	err := c.do(ctx, http.MethodGet, "/hotel?xid="+url.QueryEscape(xid), accessToken, nil, &out)
	return out, err
}

// do performs one request/response cycle: optional JSON body out, bearer
// token when supplied, JSON decode in. Non-2xx responses are decoded into an
// APIError so callers can inspect both the status and the public message.
func (c *Client) do(ctx context.Context, method, path, token string, body, target any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := http.StatusText(resp.StatusCode)
	if err := json.Unmarshal(raw, &payload); err == nil {
		switch {
		case payload.Error != "":
			msg = payload.Error
		case payload.Message != "":
			msg = payload.Message
		}
	}

	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
