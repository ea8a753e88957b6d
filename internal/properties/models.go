package properties

// Property is the static description of the rental, loaded once at startup
// from a JSON file. It is content, not state: nothing here changes at
// runtime.
type Property struct {
	Name        string   `json:"name"`
	Tagline     string   `json:"tagline,omitempty"`
	Description string   `json:"description,omitempty"`
	MaxGuests   int      `json:"max_guests"`
	Bedrooms    int      `json:"bedrooms"`
	Beds        int      `json:"beds"`
	Bathrooms   float64  `json:"bathrooms"`
	Amenities   []string `json:"amenities,omitempty"`
	HouseRules  []string `json:"house_rules,omitempty"`
	CheckInFrom string   `json:"check_in_from,omitempty"` // e.g. "16:00"
	CheckOutBy  string   `json:"check_out_by,omitempty"`  // e.g. "11:00"
	Location    Location `json:"location"`
	Photos      []Photo  `json:"photos,omitempty"`
}

// Location describes where the property is.
type Location struct {
	Area      string  `json:"area,omitempty"`
	City      string  `json:"city,omitempty"`
	Region    string  `json:"region,omitempty"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// Photo is a captioned image reference.
type Photo struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}
