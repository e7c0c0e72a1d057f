package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/roamlabs/tripgate/internal/gateway/service"
	"github.com/roamlabs/tripgate/internal/gateway/store"
	"github.com/roamlabs/tripgate/pkg/httpx"
	"github.com/roamlabs/tripgate/pkg/jwtx"
	"github.com/roamlabs/tripgate/pkg/slogx"

	_ "github.com/roamlabs/tripgate/api/gateway" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store        store.Store
	TokenService *service.TokenService
	UserService  *service.UserService
	TripService  *service.TripService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerTrips()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			TripGate API
//	@version		0.1.0
//	@description	Travel gateway providing JWT-backed sessions and location-aware
//	@description	weather, dining, event and lodging lookups.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAccounts() {
	r.Mux.Handle("GET /{$}", &WelcomeHandler{})
	r.Mux.Handle("POST /registration", &RegistrationHandler{
		UserService:  r.UserService,
		TokenService: r.TokenService,
	})
	r.Mux.Handle("POST /login", &LoginHandler{
		UserService:  r.UserService,
		TokenService: r.TokenService,
	})
	r.Mux.Handle("GET /users", &UsersHandler{UserService: r.UserService})

	r.Mux.Handle("POST /logout/access",
		httpx.Chain(
			&LogoutHandler{TokenService: r.TokenService, Kind: jwtx.KindAccess},
			httpx.AuthnMiddleware(r.TokenService, jwtx.KindAccess),
		),
	)
	r.Mux.Handle("POST /logout/refresh",
		httpx.Chain(
			&LogoutHandler{TokenService: r.TokenService, Kind: jwtx.KindRefresh},
			httpx.AuthnMiddleware(r.TokenService, jwtx.KindRefresh),
		),
	)
	r.Mux.Handle("POST /token/refresh",
		httpx.Chain(
			&TokenRefreshHandler{TokenService: r.TokenService},
			httpx.AuthnMiddleware(r.TokenService, jwtx.KindRefresh),
		),
	)
}

func (r *Router) registerTrips() {
	trips := &TripHandler{TripService: r.TripService}
	authn := httpx.AuthnMiddleware(r.TokenService, jwtx.KindAccess)

	r.Mux.Handle("GET /locationByIp", httpx.Chain(http.HandlerFunc(trips.LocationByIP), authn))
	r.Mux.Handle("GET /weather", httpx.Chain(http.HandlerFunc(trips.Weather), authn))
	r.Mux.Handle("GET /fiveday", httpx.Chain(http.HandlerFunc(trips.FiveDay), authn))
	r.Mux.Handle("GET /restaurants", httpx.Chain(http.HandlerFunc(trips.Restaurants), authn))
	r.Mux.Handle("GET /events", httpx.Chain(http.HandlerFunc(trips.Events), authn))
	r.Mux.Handle("GET /hotels", httpx.Chain(http.HandlerFunc(trips.Hotels), authn))
	r.Mux.Handle("GET /hotel", httpx.Chain(http.HandlerFunc(trips.Hotel), authn))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
