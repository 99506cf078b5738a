package functions

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

type none struct{}

type hotelID struct {
	HotelID int64 `json:"hotel_id" desc:"Hotel id"`
}

type roomID struct {
	RoomID int64 `json:"room_id" desc:"Room id"`
}

type personID struct {
	PersonID string `json:"person_id" desc:"Person id (UUID)"`
}

type roomRange struct {
	RoomID   int64 `json:"room_id" desc:"Room id"`
	CheckIn  Date  `json:"check_in" desc:"First night, YYYY-MM-DD"`
	CheckOut Date  `json:"check_out" desc:"Departure day, YYYY-MM-DD"`
}

type addHotelArgs struct {
	Name    string `json:"name"`
	Stars   int    `json:"star_rating" desc:"1 to 5"`
	City    string `json:"city"`
	Street  string `json:"street,omitempty"`
	Country string `json:"country,omitempty"`
}

type addRoomArgs struct {
	HotelID        int64        `json:"hotel_id"`
	Number         string       `json:"room_number"`
	Floor          int          `json:"floor,omitempty"`
	Capacity       int          `json:"capacity"`
	SeaView        bool         `json:"is_sea_view,omitempty"`
	SmokingAllowed bool         `json:"is_smoking_allowed,omitempty"`
	Type           string       `json:"room_type,omitempty" desc:"Standard, Deluxe, Superior, Suite or Presidential"`
	Price          domain.Money `json:"price"`
}

type guestArgs struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

type bookingArgs struct {
	PersonID string `json:"person_id" desc:"Existing person id"`
	HotelID  int64  `json:"hotel_id"`
	RoomID   int64  `json:"room_id"`
	CheckIn  Date   `json:"check_in" desc:"YYYY-MM-DD"`
	CheckOut Date   `json:"check_out" desc:"YYYY-MM-DD"`
}

type guestBookingArgs struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" desc:"Reuses the person with this email when one exists"`
	Phone     string `json:"phone,omitempty"`
	HotelID   int64  `json:"hotel_id"`
	RoomID    int64  `json:"room_id"`
	CheckIn   Date   `json:"check_in" desc:"YYYY-MM-DD"`
	CheckOut  Date   `json:"check_out" desc:"YYYY-MM-DD"`
}

type reviewArgs struct {
	PersonID string `json:"person_id"`
	HotelID  int64  `json:"hotel_id"`
	Rating   int    `json:"rating" desc:"1 to 5"`
	Comment  string `json:"comment,omitempty"`
}

// NewRegistry registers the full function surface over svc. maxConcurrent bounds CallBatch.
func NewRegistry(svc *app.Services, maxConcurrent int64, l zerolog.Logger) *Registry {
	r := newRegistry(maxConcurrent, l)
	registerHotels(r, svc)
	registerPeople(r, svc)
	registerRooms(r, svc)
	registerReservations(r, svc)
	registerReviews(r, svc)
	registerClock(r, time.Now)
	return r
}

func registerHotels(r *Registry, svc *app.Services) {
	register(r, "hotels.list", "List all hotels.", func(ctx context.Context, _ none) (any, error) {
		return svc.Hotels.List(ctx)
	})
	register(r, "hotels.search_by_city", "Hotels whose city contains the text, ignoring case.",
		func(ctx context.Context, a struct {
			City string `json:"city"`
		}) (any, error) {
			return svc.Hotels.SearchByCity(ctx, a.City)
		})
	register(r, "hotels.search_by_stars", "Hotels with at least the given star rating.",
		func(ctx context.Context, a struct {
			MinStars int `json:"min_stars"`
		}) (any, error) {
			return svc.Hotels.SearchByMinStars(ctx, a.MinStars)
		})
	register(r, "hotels.get", "Hotel details with average rating and room count.", func(ctx context.Context, a hotelID) (any, error) {
		return svc.Queries.HotelSummary(ctx, a.HotelID)
	})
	register(r, "hotels.add", "Add a hotel.", func(ctx context.Context, a addHotelArgs) (any, error) {
		return svc.Hotels.Add(ctx, a.Name, a.Stars, domain.Address{Street: a.Street, City: a.City, Country: a.Country})
	})
}

func registerPeople(r *Registry, svc *app.Services) {
	register(r, "people.find_by_email", "Find a person by email.",
		func(ctx context.Context, a struct {
			Email string `json:"email"`
		}) (any, error) {
			return svc.People.FindByEmail(ctx, a.Email)
		})
	register(r, "people.find_by_phone", "Find a person by phone number.",
		func(ctx context.Context, a struct {
			Phone string `json:"phone"`
		}) (any, error) {
			return svc.People.FindByPhone(ctx, a.Phone)
		})
	register(r, "people.get", "Get a person by id.", func(ctx context.Context, a personID) (any, error) {
		return svc.People.FindByID(ctx, a.PersonID)
	})
	register(r, "people.create", "Register a person.", func(ctx context.Context, a guestArgs) (any, error) {
		return svc.People.Create(ctx, domain.Guest(a))
	})
	register(r, "people.add_loyalty_points", "Credit loyalty points to a person.",
		func(ctx context.Context, a struct {
			PersonID string `json:"person_id"`
			Points   int    `json:"points"`
		}) (any, error) {
			if err := svc.People.AddLoyaltyPoints(ctx, a.PersonID, a.Points); err != nil {
				return nil, err
			}
			return map[string]bool{"ok": true}, nil
		})
}

func registerRooms(r *Registry, svc *app.Services) {
	register(r, "rooms.list", "List all rooms.", func(ctx context.Context, _ none) (any, error) {
		return svc.Rooms.List(ctx)
	})
	register(r, "rooms.get", "Get a room by id.", func(ctx context.Context, a roomID) (any, error) {
		return svc.Rooms.Get(ctx, a.RoomID)
	})
	register(r, "rooms.by_hotel", "Rooms of a hotel.", func(ctx context.Context, a hotelID) (any, error) {
		return svc.Rooms.ByHotel(ctx, a.HotelID)
	})
	register(r, "rooms.search_by_capacity", "In-service rooms sleeping at least min_capacity guests.",
		func(ctx context.Context, a struct {
			MinCapacity int `json:"min_capacity"`
		}) (any, error) {
			return svc.Rooms.SearchByCapacity(ctx, a.MinCapacity)
		})
	register(r, "rooms.search_by_sea_view", "In-service rooms with or without sea view.",
		func(ctx context.Context, a struct {
			SeaView bool `json:"sea_view"`
		}) (any, error) {
			return svc.Rooms.SearchBySeaView(ctx, a.SeaView)
		})
	register(r, "rooms.search_by_smoking", "In-service rooms by smoking policy.",
		func(ctx context.Context, a struct {
			Smoking bool `json:"smoking_allowed"`
		}) (any, error) {
			return svc.Rooms.SearchBySmoking(ctx, a.Smoking)
		})
	register(r, "rooms.search_by_type", "In-service rooms of a type.",
		func(ctx context.Context, a struct {
			Type string `json:"room_type" desc:"Standard, Deluxe, Superior, Suite or Presidential"`
		}) (any, error) {
			t, err := domain.ParseRoomType(a.Type)
			if err != nil {
				return nil, err
			}
			return svc.Rooms.SearchByType(ctx, t)
		})
	register(r, "rooms.search_by_price_range", "In-service rooms priced within [min_price, max_price].",
		func(ctx context.Context, a struct {
			Min domain.Money `json:"min_price"`
			Max domain.Money `json:"max_price"`
		}) (any, error) {
			return svc.Rooms.SearchByPriceRange(ctx, a.Min, a.Max)
		})
	register(r, "rooms.is_available", "Whether a room can be booked for [check_in, check_out).", func(ctx context.Context, a roomRange) (any, error) {
		ok, err := svc.Rooms.IsAvailable(ctx, a.RoomID, a.CheckIn.Time, a.CheckOut.Time)
		if err != nil {
			return nil, err
		}
		return map[string]bool{"available": ok}, nil
	})
	register(r, "rooms.block", "Record a reserved hold on a room without a reservation.",
		func(ctx context.Context, a struct {
			roomRange
			Note string `json:"note,omitempty"`
		}) (any, error) {
			return svc.Rooms.Block(ctx, a.RoomID, a.CheckIn.Time, a.CheckOut.Time, a.Note)
		})
	register(r, "rooms.reserve", "Hold a room for a range only if nothing else occupies it.",
		func(ctx context.Context, a struct {
			roomRange
			Note string `json:"note,omitempty"`
		}) (any, error) {
			return svc.Rooms.Reserve(ctx, a.RoomID, a.CheckIn.Time, a.CheckOut.Time, a.Note)
		})
	register(r, "rooms.free", "Remove reserved holds matching the range exactly.", func(ctx context.Context, a roomRange) (any, error) {
		n, err := svc.Rooms.Free(ctx, a.RoomID, a.CheckIn.Time, a.CheckOut.Time)
		if err != nil {
			return nil, err
		}
		return map[string]int{"freed": n}, nil
	})
	register(r, "rooms.list_availability", "Availability ledger of a room.", func(ctx context.Context, a roomID) (any, error) {
		return svc.Rooms.ListAvailability(ctx, a.RoomID)
	})
	register(r, "rooms.add", "Add a room to a hotel.", func(ctx context.Context, a addRoomArgs) (any, error) {
		t, err := domain.ParseRoomType(a.Type)
		if err != nil {
			return nil, err
		}
		return svc.Rooms.Add(ctx, domain.Room{
			HotelID: a.HotelID, Number: a.Number, Floor: a.Floor, Capacity: a.Capacity,
			SeaView: a.SeaView, SmokingAllowed: a.SmokingAllowed, Type: t, Price: a.Price,
		})
	})
	register(r, "rooms.set_in_service", "Take a room out of service or put it back.",
		func(ctx context.Context, a struct {
			RoomID    int64 `json:"room_id"`
			InService bool  `json:"in_service"`
		}) (any, error) {
			return svc.Rooms.SetInService(ctx, a.RoomID, a.InService)
		})
}

func registerReservations(r *Registry, svc *app.Services) {
	register(r, "reservations.list", "List all reservations.", func(ctx context.Context, _ none) (any, error) {
		return svc.Reservations.List(ctx)
	})
	register(r, "reservations.by_hotel", "Reservations at a hotel.", func(ctx context.Context, a hotelID) (any, error) {
		return svc.Reservations.ByHotel(ctx, a.HotelID)
	})
	register(r, "reservations.by_person", "Reservations of a person.", func(ctx context.Context, a personID) (any, error) {
		return svc.Reservations.ByPerson(ctx, a.PersonID)
	})
	register(r, "reservations.get", "Get a reservation by id.",
		func(ctx context.Context, a struct {
			ID int64 `json:"reservation_id"`
		}) (any, error) {
			return svc.Reservations.ByID(ctx, a.ID)
		})
	register(r, "reservations.create", "Book a room for an existing person.", func(ctx context.Context, a bookingArgs) (any, error) {
		return book(ctx, svc, domain.ReservationRequest{
			PersonID: a.PersonID, HotelID: a.HotelID, RoomID: a.RoomID,
			CheckIn: a.CheckIn.Time, CheckOut: a.CheckOut.Time,
		})
	})
	register(r, "reservations.create_with_new_person", "Book a room for a guest identified by email, registering them if new.",
		func(ctx context.Context, a guestBookingArgs) (any, error) {
			return book(ctx, svc, domain.ReservationRequest{
				Guest:   &domain.Guest{FirstName: a.FirstName, LastName: a.LastName, Email: a.Email, Phone: a.Phone},
				HotelID: a.HotelID, RoomID: a.RoomID,
				CheckIn: a.CheckIn.Time, CheckOut: a.CheckOut.Time,
			})
		})
	register(r, "reservations.cancel", "Cancel a reservation and free its room.",
		func(ctx context.Context, a struct {
			ID int64 `json:"reservation_id"`
		}) (any, error) {
			ok, err := svc.Reservations.Cancel(ctx, a.ID)
			if err != nil {
				return nil, err
			}
			if ok {
				observability.ObserveReservation("cancelled")
			}
			return map[string]bool{"cancelled": ok}, nil
		})
}

func book(ctx context.Context, svc *app.Services, req domain.ReservationRequest) (domain.Reservation, error) {
	res, err := svc.Reservations.Create(ctx, req)
	if err != nil {
		observability.ObserveReservation(domain.Kind(err))
		return domain.Reservation{}, err
	}
	observability.ObserveReservation("created")
	return res, nil
}

func registerReviews(r *Registry, svc *app.Services) {
	register(r, "reviews.list", "List all reviews.", func(ctx context.Context, _ none) (any, error) {
		return svc.Reviews.List(ctx)
	})
	register(r, "reviews.by_hotel", "Reviews of a hotel.", func(ctx context.Context, a hotelID) (any, error) {
		return svc.Reviews.ByHotel(ctx, a.HotelID)
	})
	register(r, "reviews.by_person", "Reviews written by a person.", func(ctx context.Context, a personID) (any, error) {
		return svc.Reviews.ByPerson(ctx, a.PersonID)
	})
	register(r, "reviews.get", "Get a review by id.",
		func(ctx context.Context, a struct {
			ID int64 `json:"review_id"`
		}) (any, error) {
			return svc.Reviews.Get(ctx, a.ID)
		})
	register(r, "reviews.create", "Review a hotel; awards the author loyalty points.", func(ctx context.Context, a reviewArgs) (any, error) {
		return svc.Reviews.Create(ctx, a.PersonID, a.HotelID, a.Rating, a.Comment)
	})
	register(r, "reviews.delete", "Delete a review.",
		func(ctx context.Context, a struct {
			ID int64 `json:"review_id"`
		}) (any, error) {
			_, ok, err := svc.Reviews.Delete(ctx, a.ID)
			if err != nil {
				return nil, err
			}
			return map[string]bool{"deleted": ok}, nil
		})
	register(r, "reviews.average_rating", "Average rating of a hotel, 0 when it has no reviews.", func(ctx context.Context, a hotelID) (any, error) {
		avg, n, err := svc.Reviews.AverageRating(ctx, a.HotelID)
		if err != nil {
			return nil, err
		}
		return struct {
			HotelID       int64   `json:"hotel_id"`
			AverageRating float64 `json:"average_rating"`
			ReviewCount   int     `json:"review_count"`
		}{a.HotelID, avg, n}, nil
	})
}

// system.today lets an orchestrator resolve relative dates against the server's calendar.
func registerClock(r *Registry, now func() time.Time) {
	register(r, "system.today", "Current server date, YYYY-MM-DD.", func(ctx context.Context, _ none) (any, error) {
		return map[string]string{"today": domain.Day(now()).Format(domain.DateLayout)}, nil
	})
}
