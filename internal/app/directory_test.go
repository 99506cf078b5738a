package app_test

import (
	"context"
	"errors"
	"testing"

	"hotel_booking/internal/domain"
)

func TestHotelService(t *testing.T) {
	svc, _ := newTestServices(t, nil)
	ctx := context.Background()

	got, _ := svc.Hotels.SearchByCity(ctx, "  istan")
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("SearchByCity: %+v", got)
	}
	got, _ = svc.Hotels.SearchByMinStars(ctx, 4)
	if len(got) != 1 || got[0].Name != "Grand Bosphorus" {
		t.Fatalf("SearchByMinStars: %+v", got)
	}

	h, err := svc.Hotels.Add(ctx, "Harbour View", 4, domain.Address{City: "Izmir"})
	if err != nil || h.ID != 3 {
		t.Fatalf("Add = %+v, %v", h, err)
	}
	if _, err := svc.Hotels.Add(ctx, " ", 4, domain.Address{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("blank name: %v", err)
	}
	if _, err := svc.Hotels.Add(ctx, "Six Star", 6, domain.Address{}); !errors.Is(err, domain.ErrInvalidStars) {
		t.Fatalf("stars: %v", err)
	}
	if _, err := svc.Hotels.Get(ctx, 42); !errors.Is(err, domain.ErrHotelNotFound) {
		t.Fatalf("Get unknown: %v", err)
	}
}

func TestPersonService(t *testing.T) {
	svc, _ := newTestServices(t, nil)
	ctx := context.Background()

	p, err := svc.People.FindByEmail(ctx, "ANA@example.com")
	if err != nil || p.ID != personAna {
		t.Fatalf("FindByEmail = %+v, %v", p, err)
	}
	p, err = svc.People.FindByPhone(ctx, "555-0202")
	if err != nil || p.ID != personBob {
		t.Fatalf("FindByPhone = %+v, %v", p, err)
	}
	if _, err := svc.People.FindByPhone(ctx, ""); !errors.Is(err, domain.ErrPersonNotFound) {
		t.Fatalf("empty phone matched: %v", err)
	}

	created, err := svc.People.Create(ctx, domain.Guest{FirstName: "Deniz", LastName: "Ak", Email: "deniz@example.com"})
	if err != nil || created.ID == "" || created.LoyaltyPoints != 0 {
		t.Fatalf("Create = %+v, %v", created, err)
	}
	if _, err := svc.People.Create(ctx, domain.Guest{FirstName: "Solo"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("missing last name: %v", err)
	}

	if err := svc.People.AddLoyaltyPoints(ctx, created.ID, 7); err != nil {
		t.Fatalf("AddLoyaltyPoints: %v", err)
	}
	if err := svc.People.AddLoyaltyPoints(ctx, "ghost", 7); err != nil {
		t.Fatalf("unknown person must be a no-op, got %v", err)
	}
	if err := svc.People.AddLoyaltyPoints(ctx, created.ID, -1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("negative points: %v", err)
	}
	p, _ = svc.People.FindByID(ctx, created.ID)
	if p.LoyaltyPoints != 7 {
		t.Fatalf("want 7 points, got %d", p.LoyaltyPoints)
	}
}

func TestRoomService_Searches(t *testing.T) {
	svc, _ := newTestServices(t, nil)
	ctx := context.Background()

	ids := func(rs []domain.Room) []int64 {
		out := make([]int64, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}
	search := map[string]func() ([]domain.Room, error){
		"capacity>=2": func() ([]domain.Room, error) { return svc.Rooms.SearchByCapacity(ctx, 2) },
		"sea view":    func() ([]domain.Room, error) { return svc.Rooms.SearchBySeaView(ctx, true) },
		"no sea view": func() ([]domain.Room, error) { return svc.Rooms.SearchBySeaView(ctx, false) },
		"smoking":     func() ([]domain.Room, error) { return svc.Rooms.SearchBySmoking(ctx, true) },
		"standard":    func() ([]domain.Room, error) { return svc.Rooms.SearchByType(ctx, domain.RoomStandard) },
		"price 80..150": func() ([]domain.Room, error) {
			return svc.Rooms.SearchByPriceRange(ctx, domain.Units(80), domain.Units(150))
		},
	}
	// room 4 is out of service and never listed by searches
	want := map[string][]int64{
		"capacity>=2":   {1, 2},
		"sea view":      {1},
		"no sea view":   {2, 3},
		"smoking":       {2},
		"standard":      {3},
		"price 80..150": {1, 3},
	}
	for name, fn := range search {
		t.Run(name, func(t *testing.T) {
			rs, err := fn()
			if err != nil {
				t.Fatalf("err: %v", err)
			}
			got := ids(rs)
			if len(got) != len(want[name]) {
				t.Fatalf("got %v, want %v", got, want[name])
			}
			for i := range got {
				if got[i] != want[name][i] {
					t.Fatalf("got %v, want %v", got, want[name])
				}
			}
		})
	}

	if _, err := svc.Rooms.SearchByPriceRange(ctx, domain.Units(200), domain.Units(100)); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("inverted price range: %v", err)
	}
	byHotel, _ := svc.Rooms.ByHotel(ctx, 2)
	if len(byHotel) != 2 {
		t.Fatalf("ByHotel lists out-of-service rooms too, got %d", len(byHotel))
	}
}

func TestRoomService_AddAndInService(t *testing.T) {
	svc, _ := newTestServices(t, nil)
	ctx := context.Background()

	r, err := svc.Rooms.Add(ctx, domain.Room{HotelID: 2, Number: "203", Capacity: 2, Price: domain.Units(95)})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if r.ID != 5 || !r.InService || r.Type != domain.RoomStandard {
		t.Fatalf("unexpected room: %+v", r)
	}

	cases := []struct {
		name string
		room domain.Room
		want error
	}{
		{"unknown hotel", domain.Room{HotelID: 9, Number: "1", Capacity: 1}, domain.ErrHotelNotFound},
		{"zero capacity", domain.Room{HotelID: 1, Number: "1"}, domain.ErrInvalidInput},
		{"negative price", domain.Room{HotelID: 1, Number: "1", Capacity: 1, Price: -1}, domain.ErrInvalidInput},
		{"missing number", domain.Room{HotelID: 1, Capacity: 1}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Rooms.Add(ctx, tc.room); !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}

	if _, err := svc.Rooms.SetInService(ctx, r.ID, false); err != nil {
		t.Fatalf("SetInService: %v", err)
	}
	if ok, _ := svc.Rooms.IsAvailable(ctx, r.ID, day("2030-01-01"), day("2030-01-02")); ok {
		t.Fatalf("room out of service reported available")
	}
	_, err = svc.Reservations.Create(ctx, domain.ReservationRequest{
		PersonID: personAna, HotelID: 2, RoomID: r.ID, CheckIn: day("2030-01-01"), CheckOut: day("2030-01-02"),
	})
	if !errors.Is(err, domain.ErrRoomOutOfService) {
		t.Fatalf("booking an out-of-service room: %v", err)
	}
}

func TestReviewService(t *testing.T) {
	svc, _ := newTestServices(t, nil)
	ctx := context.Background()

	avg, n, err := svc.Reviews.AverageRating(ctx, 1)
	if err != nil || avg != 4.5 || n != 2 {
		t.Fatalf("AverageRating = %v, %d, %v", avg, n, err)
	}
	if avg, n, _ := svc.Reviews.AverageRating(ctx, 2); avg != 0 || n != 0 {
		t.Fatalf("hotel without reviews: %v, %d", avg, n)
	}

	rv, err := svc.Reviews.Create(ctx, personAna, 2, 3, "  ok  ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rv.ID != 3 || rv.Comment != "ok" || rv.Person.LoyaltyPoints != 5 || rv.Hotel.Name != "Capital Inn" {
		t.Fatalf("unexpected review: %+v", rv)
	}

	for _, rating := range []int{0, 6} {
		if _, err := svc.Reviews.Create(ctx, personAna, 2, rating, ""); !errors.Is(err, domain.ErrInvalidRating) {
			t.Fatalf("rating %d: %v", rating, err)
		}
	}
	if _, err := svc.Reviews.Create(ctx, "ghost", 2, 3, ""); !errors.Is(err, domain.ErrPersonNotFound) {
		t.Fatalf("unknown person: %v", err)
	}
	if _, err := svc.Reviews.Create(ctx, personAna, 9, 3, ""); !errors.Is(err, domain.ErrHotelNotFound) {
		t.Fatalf("unknown hotel: %v", err)
	}
	p, _ := svc.People.FindByID(ctx, personAna)
	if p.LoyaltyPoints != 5 {
		t.Fatalf("rejected reviews changed points: %d", p.LoyaltyPoints)
	}

	byAna, _ := svc.Reviews.ByPerson(ctx, personAna)
	if len(byAna) != 2 {
		t.Fatalf("ByPerson: %d", len(byAna))
	}

	if _, ok, err := svc.Reviews.Delete(ctx, rv.ID); !ok || err != nil {
		t.Fatalf("Delete = %v, %v", ok, err)
	}
	if _, ok, err := svc.Reviews.Delete(ctx, rv.ID); ok || err != nil {
		t.Fatalf("second Delete = %v, %v; want false, nil", ok, err)
	}
}
