package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roamlabs/tripgate/internal/gateway/domain"
	"github.com/roamlabs/tripgate/internal/gateway/location"
	"github.com/roamlabs/tripgate/internal/gateway/provider"
	"github.com/roamlabs/tripgate/internal/gateway/provider/weather"
	"github.com/roamlabs/tripgate/internal/gateway/service"
	"github.com/roamlabs/tripgate/internal/gateway/store"
	"github.com/roamlabs/tripgate/internal/gateway/store/drivers/sqlite"
	"github.com/roamlabs/tripgate/pkg/cryptox"
	"github.com/roamlabs/tripgate/pkg/jwtx"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "tripgate-http-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

// fakeGeo resolves every address to a fixed zip.
type fakeGeo struct{ zip string }

func (f fakeGeo) Lookup(context.Context, string) (domain.LocationContext, error) {
	if f.zip == "" {
		return domain.LocationContext{}, provider.ErrNoInformation
	}
	return domain.LocationContext{Zip: f.zip, Source: domain.SourceIPDerived}, nil
}

// fakeTrips serves canned records for every upstream.
type fakeTrips struct {
	fail bool
}

func (f *fakeTrips) Current(_ context.Context, zip string) (domain.WeatherRecord, error) {
	if f.fail {
		return domain.WeatherRecord{}, provider.ErrNoInformation
	}
	return domain.WeatherRecord{City: "Bellevue", Date: "2026-01-01 00:00", Temperature: 44.2, Description: "light rain"}, nil
}

func (f *fakeTrips) Forecast(_ context.Context, zip string) ([]domain.WeatherRecord, error) {
	if f.fail {
		return nil, provider.ErrNoInformation
	}
	return []domain.WeatherRecord{{City: "Bellevue", Date: "2026-01-01 00:00", Temperature: 44.2, Description: "light rain"}}, nil
}

func (f *fakeTrips) Lookup(context.Context, string) (weather.Coordinates, error) {
	if f.fail {
		return weather.Coordinates{}, provider.ErrNoInformation
	}
	return weather.Coordinates{Lat: 47.61, Lon: -122.33, City: "Bellevue"}, nil
}

func (f *fakeTrips) Search(context.Context, string, float64, float64) ([]domain.RestaurantRecord, error) {
	if f.fail {
		return nil, provider.ErrNoInformation
	}
	return []domain.RestaurantRecord{{Name: "The Pink Door", Rating: 4.6}}, nil
}

func (f *fakeTrips) Nearby(context.Context, float64, float64) ([]domain.HotelRecord, error) {
	if f.fail {
		return nil, provider.ErrNoInformation
	}
	return []domain.HotelRecord{{Name: "Hotel Sorrento", Rating: "3", XID: "W123"}}, nil
}

func (f *fakeTrips) Detail(_ context.Context, xid string) (domain.HotelDetail, error) {
	if f.fail {
		return domain.HotelDetail{}, provider.ErrNoInformation
	}
	return domain.HotelDetail{HouseNumber: "900", Street: "Madison St", City: "Seattle"}, nil
}

type fakeEvents struct{ fail bool }

func (f fakeEvents) Search(context.Context, string) ([]domain.EventRecord, error) {
	if f.fail {
		return nil, provider.ErrNoInformation
	}
	return []domain.EventRecord{{Name: "Winter Concert", Date: "2026-01-15", Venue: "Meydenbauer Center", Address: "11100 NE 6th St"}}, nil
}

type testEnv struct {
	srv    *httptest.Server
	store  store.Store
	tokens *service.TokenService
	trips  *fakeTrips
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	secret := []byte("0123456789abcdef0123456789abcdef")
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)

	tokens := &service.TokenService{
		Signer:   signer,
		Verifier: jwtx.NewVerifierHS256(secret, "tripgate-test"),
		Store:    st,
		Issuer:   "tripgate-test",
	}
	trips := &fakeTrips{}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter("test", st, logger)
	router.TokenService = tokens
	router.UserService = &service.UserService{Store: st}
	router.TripService = &service.TripService{
		Resolver: location.NewResolver(fakeGeo{zip: "98004"}),
		Weather:  trips,
		Dining:   trips,
		Events:   fakeEvents{},
		Lodging:  trips,
	}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, store: st, tokens: tokens, trips: trips}
}

func (e *testEnv) post(t *testing.T, path, token string, body any) *http.Response {
	t.Helper()
	return e.request(t, http.MethodPost, path, token, body)
}

func (e *testEnv) get(t *testing.T, path, token string) *http.Response {
	t.Helper()
	return e.request(t, http.MethodGet, path, token, nil)
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func register(t *testing.T, e *testEnv, username string) (access, refresh string) {
	t.Helper()

	resp := e.post(t, "/registration", "", map[string]string{"username": username, "password": "hunter2"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[map[string]string](t, resp)
	require.NotEmpty(t, body["access_token"])
	require.NotEmpty(t, body["refresh_token"])
	return body["access_token"], body["refresh_token"]
}

func TestWelcome(t *testing.T) {
	e := newTestEnv(t)

	resp := e.get(t, "/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[map[string]string](t, resp)
	require.Equal(t, "Let's try to travel with our experimental API", body["message"])
}

func TestRegistrationIssuesTokens(t *testing.T) {
	e := newTestEnv(t)

	resp := e.post(t, "/registration", "", map[string]string{"username": "alice", "password": "hunter2"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[map[string]string](t, resp)
	require.Equal(t, "User alice was created", body["message"])
	require.NotEmpty(t, body["access_token"])
	require.NotEmpty(t, body["refresh_token"])
}

func TestRegistrationDuplicateReturnsNoTokens(t *testing.T) {
	e := newTestEnv(t)
	register(t, e, "alice")

	resp := e.post(t, "/registration", "", map[string]string{"username": "alice", "password": "other"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[map[string]string](t, resp)
	require.Equal(t, "User alice already exists", body["message"])
	require.Empty(t, body["access_token"])
	require.Empty(t, body["refresh_token"])
}

func TestRegistrationValidation(t *testing.T) {
	e := newTestEnv(t)

	for name, body := range map[string]map[string]string{
		"blank username": {"username": "   ", "password": "hunter2"},
		"blank password": {"username": "alice", "password": ""},
		"missing fields": {},
	} {
		t.Run(name, func(t *testing.T) {
			resp := e.post(t, "/registration", "", body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestLogin(t *testing.T) {
	e := newTestEnv(t)
	register(t, e, "alice")

	resp := e.post(t, "/login", "", map[string]string{"username": "alice", "password": "hunter2"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[map[string]string](t, resp)
	require.Equal(t, "Logged in as alice", body["message"])
	require.NotEmpty(t, body["access_token"])
}

func TestLoginUnknownUser(t *testing.T) {
	e := newTestEnv(t)

	resp := e.post(t, "/login", "", map[string]string{"username": "ghost", "password": "hunter2"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeBody[map[string]string](t, resp)
	require.Equal(t, "User ghost doesn't exist", body["message"])
}

func TestLoginWrongPassword(t *testing.T) {
	e := newTestEnv(t)
	register(t, e, "alice")

	resp := e.post(t, "/login", "", map[string]string{"username": "alice", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody[map[string]string](t, resp)
	require.Equal(t, "Wrong credentials", body["message"])
}

func TestUsersListUnauthenticated(t *testing.T) {
	e := newTestEnv(t)
	register(t, e, "alice")
	register(t, e, "bob")

	resp := e.get(t, "/users", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[map[string][]string](t, resp)
	require.Equal(t, []string{"alice", "bob"}, body["users"])
}

func TestLogoutAccessRevokes(t *testing.T) {
	e := newTestEnv(t)
	access, _ := register(t, e, "alice")

	resp := e.get(t, "/weather", access)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = e.post(t, "/logout/access", access, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[map[string]string](t, resp)
	require.Equal(t, "Access token has been revoked", body["message"])

	// The revoked token must be rejected even though its signature is valid.
	resp = e.get(t, "/weather", access)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutRefreshRevokes(t *testing.T) {
	e := newTestEnv(t)
	_, refresh := register(t, e, "alice")

	resp := e.post(t, "/logout/refresh", refresh, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[map[string]string](t, resp)
	require.Equal(t, "Refresh token has been revoked", body["message"])

	resp = e.post(t, "/token/refresh", refresh, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutRejectsWrongKind(t *testing.T) {
	e := newTestEnv(t)
	access, refresh := register(t, e, "alice")

	resp := e.post(t, "/logout/access", refresh, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = e.post(t, "/logout/refresh", access, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTokenRefresh(t *testing.T) {
	e := newTestEnv(t)
	_, refresh := register(t, e, "alice")

	resp := e.post(t, "/token/refresh", refresh, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[map[string]string](t, resp)
	require.NotEmpty(t, body["access_token"])

	// The new access token works and the refresh token survives.
	resp = e.get(t, "/weather", body["access_token"])
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = e.post(t, "/token/refresh", refresh, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTokenRefreshRejectsAccessToken(t *testing.T) {
	e := newTestEnv(t)
	access, _ := register(t, e, "alice")

	resp := e.post(t, "/token/refresh", access, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTripRoutesRequireAccessToken(t *testing.T) {
	e := newTestEnv(t)

	for _, path := range []string{"/locationByIp", "/weather", "/fiveday", "/restaurants", "/events", "/hotels", "/hotel?xid=W123"} {
		resp := e.get(t, path, "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestLocationByIP(t *testing.T) {
	e := newTestEnv(t)
	access, _ := register(t, e, "alice")

	// The zipcode parameter must not short-circuit the lookup.
	resp := e.get(t, "/locationByIp?zipcode=98004", access)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[map[string]string](t, resp)
	require.Equal(t, "98004", body["zip_code"])
	require.Equal(t, "ip-derived", body["source"])
}

func TestWeather(t *testing.T) {
	e := newTestEnv(t)
	access, _ := register(t, e, "alice")

	resp := e.get(t, "/weather?zipcode=98004", access)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[map[string]any](t, resp)
	require.Equal(t, "Bellevue", body["city"])
	require.Equal(t, 44.2, body["temperature"])
	require.Equal(t, "light rain", body["description"])
}

func TestFiveDay(t *testing.T) {
	e := newTestEnv(t)
	access, _ := register(t, e, "alice")

	resp := e.get(t, "/fiveday", access)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[[]map[string]any](t, resp)
	require.Len(t, body, 1)
}

func TestRestaurants(t *testing.T) {
	e := newTestEnv(t)
	access, _ := register(t, e, "alice")

	resp := e.get(t, "/restaurants", access)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[[]map[string]any](t, resp)
	require.Len(t, body, 1)
	require.Equal(t, "The Pink Door", body[0]["name"])
}

func TestEvents(t *testing.T) {
	e := newTestEnv(t)
	access, _ := register(t, e, "alice")

	resp := e.get(t, "/events", access)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[[]map[string]any](t, resp)
	require.Len(t, body, 1)
	require.Equal(t, "Winter Concert", body[0]["name"])
}

func TestHotelsAndDetail(t *testing.T) {
	e := newTestEnv(t)
	access, _ := register(t, e, "alice")

	resp := e.get(t, "/hotels", access)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	hotels := decodeBody[[]map[string]any](t, resp)
	require.Len(t, hotels, 1)
	require.Equal(t, "W123", hotels[0]["xid"])

	resp = e.get(t, "/hotel?xid=W123", access)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	detail := decodeBody[map[string]any](t, resp)
	require.Equal(t, "Madison St", detail["street"])
}

func TestHotelRequiresXID(t *testing.T) {
	e := newTestEnv(t)
	access, _ := register(t, e, "alice")

	resp := e.get(t, "/hotel", access)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProviderFailureMapsToNoInformation(t *testing.T) {
	e := newTestEnv(t)
	access, _ := register(t, e, "alice")
	e.trips.fail = true

	resp := e.get(t, "/weather", access)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeBody[map[string]string](t, resp)
	require.Equal(t, "no information", body["error"])
}

func TestHealthEndpoints(t *testing.T) {
	e := newTestEnv(t)

	resp := e.get(t, "/livez", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = e.get(t, "/readyz", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[map[string]any](t, resp)
	require.Equal(t, "ok", body["status"])
}
