package app_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/storage/memory"
)

// ---- fixtures ----

const (
	personAna = "3e9b1f0a-7c2d-4e85-b1a6-9d0c4f2e8a71"
	personBob = "a81d5c3e-2f94-4b07-8e6a-1c5d9f3b7e20"
)

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func testCatalog() domain.Catalog {
	grand := domain.Hotel{ID: 1, Name: "Grand Bosphorus", Stars: 5, Address: domain.Address{City: "Istanbul", Country: "TR"}}
	inn := domain.Hotel{ID: 2, Name: "Capital Inn", Stars: 3, Address: domain.Address{City: "Ankara", Country: "TR"}}
	ana := domain.Person{ID: personAna, FirstName: "Ana", LastName: "Silva", Email: "ana@example.com", Phone: "555-0101"}
	bob := domain.Person{ID: personBob, FirstName: "Bob", LastName: "Stone", Email: "bob@example.com", Phone: "555-0202", LoyaltyPoints: 10}
	return domain.Catalog{
		Hotels: []domain.Hotel{grand, inn},
		Rooms: []domain.Room{
			{ID: 1, HotelID: 1, Number: "101", Capacity: 2, SeaView: true, Type: domain.RoomDeluxe, Price: domain.Units(150), InService: true},
			{ID: 2, HotelID: 1, Number: "102", Capacity: 4, SmokingAllowed: true, Type: domain.RoomSuite, Price: domain.Units(320), InService: true},
			{ID: 3, HotelID: 2, Number: "201", Capacity: 1, Type: domain.RoomStandard, Price: domain.Units(80), InService: true},
			{ID: 4, HotelID: 2, Number: "202", Capacity: 2, Type: domain.RoomStandard, Price: domain.Units(90), InService: false},
		},
		People: []domain.Person{ana, bob},
		Availability: []domain.AvailabilityEntry{
			{RoomID: 1, Start: day("2030-01-01"), End: day("2030-12-31"), Status: domain.StatusAvailable, Note: "season"},
			{RoomID: 2, Start: day("2030-06-10"), End: day("2030-06-12"), Status: domain.StatusBlocked, Note: "maintenance"},
			{RoomID: 3, Start: day("2030-07-01"), End: day("2030-07-05"), Status: domain.StatusOutOfService, Note: "renovation"},
		},
		Reviews: []domain.Review{
			{ID: 1, Rating: 4, Comment: "Nice", Person: ana, Hotel: grand},
			{ID: 2, Rating: 5, Comment: "Lovely", Person: bob, Hotel: grand},
		},
	}
}

func newTestServices(t *testing.T, cache domain.Cache) (*app.Services, *memory.Store) {
	t.Helper()
	st, err := memory.NewFromCatalog(testCatalog())
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return app.NewServices(st, cache, time.Minute), st
}

// ---- fakes ----

// fakeCache keeps JSON bodies the way the Redis adapter does, so cached values never alias.
type fakeCache struct {
	store map[string][]byte
	gets  int
	hits  int
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.gets++
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

type fakeIndexer struct {
	docs []domain.HotelDocument
	err  error
}

func (f *fakeIndexer) UpsertHotels(ctx context.Context, docs []domain.HotelDocument) error {
	if f.err != nil {
		return f.err
	}
	f.docs = append(f.docs, docs...)
	return nil
}
