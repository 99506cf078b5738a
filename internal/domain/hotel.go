package domain

type Address struct {
	Street  string `json:"street,omitempty" yaml:"street"`
	City    string `json:"city,omitempty" yaml:"city"`
	State   string `json:"state,omitempty" yaml:"state"`
	ZipCode string `json:"zip_code,omitempty" yaml:"zip_code"`
	Country string `json:"country,omitempty" yaml:"country"`
}

type Hotel struct {
	ID      int64   `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Stars   int     `json:"star_rating" yaml:"stars"`
	Address Address `json:"address" yaml:"address"`
}

// HotelSummary is the cached read model served by the hotel detail endpoint.
type HotelSummary struct {
	Hotel         Hotel   `json:"hotel"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
	RoomCount     int     `json:"room_count"`
}
