// Package location determines the geographic anchor for a request: an
// explicit zip code when the caller supplies one, otherwise a geolocation of
// the caller's network address.
package location

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/roamlabs/tripgate/internal/gateway/domain"
	"github.com/roamlabs/tripgate/pkg/slogx"
)

// ErrUnknownLocation is returned when no usable zip code could be determined
// for a request. A failed geolocation is terminal; there are no retries and
// the error is never mistaken for resolved data.
var ErrUnknownLocation = errors.New("location: unknown location")

// GeoIP is the IP-geolocation capability the resolver falls back to.
type GeoIP interface {
	Lookup(ctx context.Context, ip string) (domain.LocationContext, error)
}

type Resolver struct {
	GeoIP GeoIP
}

func NewResolver(geo GeoIP) *Resolver {
	return &Resolver{GeoIP: geo}
}

// Resolve determines the LocationContext for a request.
//
// Precedence is fixed: a non-empty explicitZip wins and is trusted as-is
// with no network call (city/country stay empty). Otherwise the caller's
// address is geolocated; the forwarded header's LAST comma-separated entry
// is preferred over the direct connection address because it is the hop
// appended by our own edge.
func (r *Resolver) Resolve(ctx context.Context, explicitZip, forwardedFor, remoteAddr string) (domain.LocationContext, error) {
	if zip := strings.TrimSpace(explicitZip); zip != "" {
		return domain.LocationContext{
			Zip:    zip,
			Source: domain.SourceExplicit,
		}, nil
	}

	addr := lookupAddress(forwardedFor, remoteAddr)
	if addr == "" {
		return domain.LocationContext{}, ErrUnknownLocation
	}

	loc, err := r.GeoIP.Lookup(ctx, addr)
	if err != nil {
		slogx.FromContext(ctx).Warn("ip geolocation failed", "addr", addr, "err", err)
		return domain.LocationContext{}, ErrUnknownLocation
	}
	if loc.Zip == "" {
		return domain.LocationContext{}, ErrUnknownLocation
	}

	loc.Source = domain.SourceIPDerived
	return loc, nil
}

// lookupAddress picks which address to geolocate: the last entry of the
// forwarded header when present, else the remote address with any port
// stripped.
func lookupAddress(forwardedFor, remoteAddr string) string {
	if forwardedFor != "" {
		parts := strings.Split(forwardedFor, ",")
		return strings.TrimSpace(parts[len(parts)-1])
	}

	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return strings.TrimSpace(remoteAddr)
}
