package service

import (
	"context"

	"github.com/roamlabs/tripgate/internal/gateway/domain"
	"github.com/roamlabs/tripgate/internal/gateway/location"
	"github.com/roamlabs/tripgate/internal/gateway/provider/weather"
)

// ResolveInput carries everything a request contributes to location
// resolution: an optional explicit zip plus the caller's addressing info.
type ResolveInput struct {
	Zip          string
	ForwardedFor string
	RemoteAddr   string
}

// WeatherProvider is the slice of the weather adapter TripService needs.
type WeatherProvider interface {
	Current(ctx context.Context, zip string) (domain.WeatherRecord, error)
	Forecast(ctx context.Context, zip string) ([]domain.WeatherRecord, error)
	Lookup(ctx context.Context, zip string) (weather.Coordinates, error)
}

type DiningProvider interface {
	Search(ctx context.Context, city string, lat, lon float64) ([]domain.RestaurantRecord, error)
}

type EventsProvider interface {
	Search(ctx context.Context, zip string) ([]domain.EventRecord, error)
}

type LodgingProvider interface {
	Nearby(ctx context.Context, lat, lon float64) ([]domain.HotelRecord, error)
	Detail(ctx context.Context, xid string) (domain.HotelDetail, error)
}

// TripService fans requests out to the upstream adapters after anchoring
// them to a location. Every operation resolves the location first; a request
// with no resolvable location never reaches an upstream.
type TripService struct {
	Resolver *location.Resolver
	Weather  WeatherProvider
	Dining   DiningProvider
	Events   EventsProvider
	Lodging  LodgingProvider
}

func (s *TripService) resolve(ctx context.Context, in ResolveInput) (domain.LocationContext, error) {
	return s.Resolver.Resolve(ctx, in.Zip, in.ForwardedFor, in.RemoteAddr)
}

// coordinates resolves a request down to lat/lon via the weather upstream's
// zip lookup. The dining and lodging adapters both key off this.
func (s *TripService) coordinates(ctx context.Context, in ResolveInput) (weather.Coordinates, error) {
	loc, err := s.resolve(ctx, in)
	if err != nil {
		return weather.Coordinates{}, err
	}
	return s.Weather.Lookup(ctx, loc.Zip)
}

// LocationByIP geolocates the caller's network address and returns the
// derived location. An explicit zip is deliberately ignored here: the whole
// point of the operation is to report where the caller's address lands.
func (s *TripService) LocationByIP(ctx context.Context, in ResolveInput) (domain.LocationContext, error) {
	return s.Resolver.Resolve(ctx, "", in.ForwardedFor, in.RemoteAddr)
}

// CurrentWeather returns present conditions for the resolved location.
func (s *TripService) CurrentWeather(ctx context.Context, in ResolveInput) (domain.WeatherRecord, error) {
	loc, err := s.resolve(ctx, in)
	if err != nil {
		return domain.WeatherRecord{}, err
	}
	return s.Weather.Current(ctx, loc.Zip)
}

// FiveDayForecast returns the capped forecast list for the resolved location.
func (s *TripService) FiveDayForecast(ctx context.Context, in ResolveInput) ([]domain.WeatherRecord, error) {
	loc, err := s.resolve(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.Weather.Forecast(ctx, loc.Zip)
}

// Restaurants returns restaurants near the resolved location. The dining
// upstream is keyed by city plus coordinates, both of which come from the
// weather upstream's zip lookup.
func (s *TripService) Restaurants(ctx context.Context, in ResolveInput) ([]domain.RestaurantRecord, error) {
	coords, err := s.coordinates(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.Dining.Search(ctx, coords.City, coords.Lat, coords.Lon)
}

// LocalEvents returns upcoming events around the resolved location's zip.
func (s *TripService) LocalEvents(ctx context.Context, in ResolveInput) ([]domain.EventRecord, error) {
	loc, err := s.resolve(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.Events.Search(ctx, loc.Zip)
}

// Hotels returns lodging near the resolved location's coordinates.
func (s *TripService) Hotels(ctx context.Context, in ResolveInput) ([]domain.HotelRecord, error) {
	coords, err := s.coordinates(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.Lodging.Nearby(ctx, coords.Lat, coords.Lon)
}

// HotelDetail resolves one lodging entry's address by xid. No location
// resolution is involved; the xid fully identifies the place.
func (s *TripService) HotelDetail(ctx context.Context, xid string) (domain.HotelDetail, error) {
	return s.Lodging.Detail(ctx, xid)
}
