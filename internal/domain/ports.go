package domain

import (
	"context"
	"time"
)

// Store owns every collection of the booking system. Each method is atomic with respect to the
// others; CommitReservation, CancelReservation and CommitReview apply several collection changes as
// one unit.
type Store interface {
	Hotels(ctx context.Context) ([]Hotel, error)
	Hotel(ctx context.Context, id int64) (Hotel, error)
	InsertHotel(ctx context.Context, h Hotel) (Hotel, error)

	Rooms(ctx context.Context) ([]Room, error)
	Room(ctx context.Context, id int64) (Room, error)
	InsertRoom(ctx context.Context, r Room) (Room, error)
	SetRoomInService(ctx context.Context, id int64, inService bool) (Room, error)

	People(ctx context.Context) ([]Person, error)
	Person(ctx context.Context, id string) (Person, error)
	InsertPerson(ctx context.Context, p Person) (Person, error)
	AddLoyaltyPoints(ctx context.Context, id string, points int) (Person, error)

	Availability(ctx context.Context, roomID int64) ([]AvailabilityEntry, error)
	InsertAvailability(ctx context.Context, e AvailabilityEntry) (AvailabilityEntry, error)
	DeleteReserved(ctx context.Context, roomID int64, start, end time.Time) (int, error)

	Reservations(ctx context.Context) ([]Reservation, error)
	Reservation(ctx context.Context, id int64) (Reservation, error)
	CommitReservation(ctx context.Context, c BookingCommit) (Reservation, error)
	CancelReservation(ctx context.Context, id int64) (Reservation, error)

	Reviews(ctx context.Context) ([]Review, error)
	Review(ctx context.Context, id int64) (Review, error)
	CommitReview(ctx context.Context, rv Review, points int) (Review, error)
	DeleteReview(ctx context.Context, id int64) (Review, error)
}

// BookingCommit is steps 7-9 of a booking: persist the reservation, append its Reserved hold and
// award loyalty points. When NewGuest is set the store finds-or-creates the person by email inside
// the same unit, so a rejected commit never leaves a half-created guest behind.
type BookingCommit struct {
	Reservation Reservation
	NewGuest    *Guest
	HoldNote    string
	Points      int
}

// Catalog is the seed data a store is built from.
type Catalog struct {
	Hotels       []Hotel
	Rooms        []Room
	People       []Person
	Availability []AvailabilityEntry
	Reviews      []Review
}

type CatalogSource interface {
	LoadCatalog(ctx context.Context) (Catalog, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type ChatSessionStore interface {
	Create(ctx context.Context) (ChatSession, error)
	Get(ctx context.Context, id string) (ChatSession, error)
	Append(ctx context.Context, id string, msgs ...ChatMessage) (ChatSession, error)
	History(ctx context.Context, id string) ([]ChatMessage, error)
}

// SearchIndexer publishes hotel documents to an external search index.
type SearchIndexer interface {
	UpsertHotels(ctx context.Context, docs []HotelDocument) error
}

// HotelDocument is one hotel as published to the search index.
type HotelDocument struct {
	HotelID       string   `json:"HotelId"`
	HotelName     string   `json:"HotelName"`
	City          string   `json:"City"`
	Country       string   `json:"Country"`
	Address       string   `json:"Address"`
	StarRating    int      `json:"StarRating"`
	PricePerNight Money    `json:"PricePerNight"`
	RoomTypes     string   `json:"RoomTypes"`
	HasSeaView    bool     `json:"HasSeaView"`
	SmokingRooms  bool     `json:"SmokingRooms"`
	AverageRating float64  `json:"AverageRating"`
	ReviewCount   int      `json:"ReviewCount"`
	Highlights    []string `json:"Highlights,omitempty"`
}
