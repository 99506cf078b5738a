package domain

import "time"

// Reservation embeds value snapshots of the person, hotel and room taken at booking time.
type Reservation struct {
	ID         int64     `json:"id"`
	Person     Person    `json:"person"`
	Hotel      Hotel     `json:"hotel"`
	Room       Room      `json:"room"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Nights     int       `json:"nights"`
	TotalPrice Money     `json:"total_price"`
}

// ReservationRequest names the guest either by PersonID or by Guest details (find-or-create by email).
type ReservationRequest struct {
	PersonID string
	Guest    *Guest
	HotelID  int64
	RoomID   int64
	CheckIn  time.Time
	CheckOut time.Time
}
