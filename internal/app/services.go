package app

import (
	"time"

	"hotel_booking/internal/domain"
)

// Services bundles every use-case service over one store. Adapters take the bundle instead of
// wiring services one by one.
type Services struct {
	Ledger       *Ledger
	Hotels       *HotelService
	Rooms        *RoomService
	People       *PersonService
	Reservations *ReservationService
	Reviews      *ReviewService
	Queries      *QueryService
}

func NewServices(s domain.Store, c domain.Cache, cacheTTL time.Duration) *Services {
	ledger := NewLedger(s)
	hotels := NewHotelService(s)
	rooms := NewRoomService(s, ledger, c)
	people := NewPersonService(s)
	reviews := NewReviewService(s, c)
	return &Services{
		Ledger:       ledger,
		Hotels:       hotels,
		Rooms:        rooms,
		People:       people,
		Reservations: NewReservationService(s, ledger, people),
		Reviews:      reviews,
		Queries:      NewQueryService(hotels, rooms, reviews, c, cacheTTL),
	}
}
