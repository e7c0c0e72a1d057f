package gatesdk

// MessageResponse is the {"message": ...} envelope the account endpoints use.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is returned by registration and login: a human message plus
// the freshly issued pair.
type TokenResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse is returned by the token refresh endpoint.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// UsersResponse lists every registered username, oldest first.
type UsersResponse struct {
	Users []string `json:"users"`
}

// HealthChecks reports per-dependency health in readiness responses.
type HealthChecks struct {
	Database string `json:"database,omitempty"`
	Signer   string `json:"signer,omitempty"`
}

// HealthResponse is the health endpoint envelope.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// Location is the geographic anchor derived for a request.
type Location struct {
	ZipCode string `json:"zip_code"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
	Source  string `json:"source"`
}

// Weather is a normalized weather observation or forecast entry.
type Weather struct {
	City        string  `json:"city"`
	Date        string  `json:"date"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
}

// Restaurant is a normalized dining search result.
type Restaurant struct {
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Phone      string  `json:"phone"`
	Cuisine    string  `json:"cuisine"`
	PriceScale int     `json:"price_scale"`
	Rating     float64 `json:"rating"`
}

// Event is a normalized local event.
type Event struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Segment  string `json:"segment,omitempty"`
	Genre    string `json:"genre,omitempty"`
	SubGenre string `json:"sub_genre,omitempty"`
	Venue    string `json:"venue"`
	Address  string `json:"address"`
}

// Hotel is a normalized lodging search result. XID keys the detail lookup.
type Hotel struct {
	Name   string `json:"name"`
	Rating string `json:"rating"`
	XID    string `json:"xid"`
}

// HotelDetail is the address detail for one lodging entry.
type HotelDetail struct {
	HouseNumber string `json:"house_number"`
	Street      string `json:"street"`
	City        string `json:"city"`
}
