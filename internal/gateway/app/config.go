package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the gateway's full runtime configuration, parsed from the
// environment. A local .env file is loaded first when present.
type Config struct {
	Issuer    string `env:"TRIPGATE_ISSUER" envDefault:"tripgate"`
	JWTSecret string `env:"TRIPGATE_JWT_SECRET,required"`

	DatabaseFile string `env:"TRIPGATE_DATABASE_FILE" envDefault:"tripgate.db"`
	PepperFile   string `env:"TRIPGATE_PEPPER_FILE" envDefault:"pepper"`

	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	Port      int    `env:"PORT" envDefault:"8080"`

	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	AccessTokenTTL      time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL     time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"720h"`

	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`

	// Upstream API keys. The gateway serves nothing useful without them, so
	// all four are required.
	OpenWeatherKey  string `env:"OPEN_WEATHER_KEY,required"`
	ZomatoKey       string `env:"ZOMATO_KEY,required"`
	TicketmasterKey string `env:"TICKETMASTER_KEY,required"`
	OpenTripMapKey  string `env:"OPENTRIPMAP_KEY,required"`

	// Base URL overrides, mainly for tests and self-hosted mirrors. Empty
	// means each adapter's default.
	GeoIPBaseURL   string `env:"GEOIP_BASE_URL"`
	WeatherBaseURL string `env:"OPEN_WEATHER_BASE_URL"`
	DiningBaseURL  string `env:"ZOMATO_BASE_URL"`
	EventsBaseURL  string `env:"TICKETMASTER_BASE_URL"`
	LodgingBaseURL string `env:"OPENTRIPMAP_BASE_URL"`
}

// LoadConfig reads configuration from the environment, preceded by a
// best-effort .env load. A missing .env file is not an error.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg, nil
}
