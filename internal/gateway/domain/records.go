package domain

// Normalized upstream records. Each provider adapter maps its wire payload
// into exactly one of these shapes; a payload that cannot fill the expected
// fields fails the whole call rather than producing a partial record.

// WeatherRecord is one weather observation or forecast entry.
type WeatherRecord struct {
	City        string  `json:"city"`
	Date        string  `json:"date"`
	Temperature float64 `json:"temperature"` // degrees Fahrenheit
	Description string  `json:"description"`
}

// RestaurantRecord is one dining search result.
type RestaurantRecord struct {
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Phone      string  `json:"phone"`
	Cuisine    string  `json:"cuisine"`
	PriceScale int     `json:"price_scale"`
	Rating     float64 `json:"rating"`
}

// EventRecord is one upcoming event. The classification triple keeps the
// last-seen values when the upstream lists several classification entries.
type EventRecord struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Segment  string `json:"segment"`
	Genre    string `json:"genre"`
	SubGenre string `json:"subgenre"`
	Venue    string `json:"venue"`
	Address  string `json:"address"`
}

// HotelRecord is one lodging search result. XID keys the separate detail
// lookup that resolves the full address.
type HotelRecord struct {
	Name   string `json:"name"`
	Rating string `json:"rating"`
	XID    string `json:"xid"`
}

// HotelDetail is the address detail for a single lodging entry.
type HotelDetail struct {
	HouseNumber string `json:"house_number"`
	Street      string `json:"street"`
	City        string `json:"city"`
}
