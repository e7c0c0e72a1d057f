package domain

// LocationSource records how a request's location anchor was determined.
type LocationSource string

const (
	// SourceExplicit means the caller supplied a zip code directly. The zip
	// is trusted as-is and no lookup happens, so city/country stay empty.
	SourceExplicit LocationSource = "explicit"

	// SourceIPDerived means the zip was resolved from the caller's network
	// address via the IP-geolocation provider.
	SourceIPDerived LocationSource = "ip-derived"
)

// LocationContext is the resolved geographic anchor for one request. It is
// built per request and never persisted. Zip is guaranteed non-empty by the
// resolver; a request without a resolvable zip fails before reaching any
// provider.
type LocationContext struct {
	Zip     string         `json:"zip_code"`
	City    string         `json:"city,omitempty"`
	Country string         `json:"country,omitempty"`
	Source  LocationSource `json:"source"`
}
