package memory

import (
	"time"

	"hotel_booking/internal/domain"
)

// Fixed ids so seeded reviews and fixtures can reference the demo guests.
const (
	DemoGuestBurak = "6f1c2d9e-3b7a-4c51-9a8e-0d2f4b6c8e10"
	DemoGuestFeyza = "b4e7a1c3-58d2-4f96-8c0b-7e3a9d1f2c54"
)

// DemoCatalog is the built-in data set used when no other catalog source is configured.
// Availability fixtures are laid out relative to today.
func DemoCatalog(today time.Time) domain.Catalog {
	today = domain.Day(today)

	hotels := []domain.Hotel{
		{ID: 1, Name: "Grand Hotel Istanbul", Stars: 5, Address: domain.Address{City: "Istanbul", Street: "Taksim Square", Country: "TR"}},
		{ID: 2, Name: "Ankara Palace Hotel", Stars: 4, Address: domain.Address{City: "Ankara", Street: "Kızılay", Country: "TR"}},
		{ID: 3, Name: "Izmir Beach Resort", Stars: 5, Address: domain.Address{City: "Izmir", Street: "Kordon", Country: "TR"}},
	}

	rooms := []domain.Room{
		{ID: 1, HotelID: 1, Number: "101", Floor: 1, Capacity: 2, Type: domain.RoomStandard, Price: domain.Units(500), InService: true},
		{ID: 2, HotelID: 1, Number: "201", Floor: 2, Capacity: 3, SeaView: true, Type: domain.RoomDeluxe, Price: domain.Units(750), InService: true},
		{ID: 3, HotelID: 1, Number: "301", Floor: 3, Capacity: 4, SeaView: true, Type: domain.RoomSuite, Price: domain.Units(1000), InService: true},
		{ID: 4, HotelID: 2, Number: "102", Floor: 1, Capacity: 2, SmokingAllowed: true, Type: domain.RoomStandard, Price: domain.Units(400), InService: true},
		{ID: 5, HotelID: 2, Number: "202", Floor: 2, Capacity: 3, Type: domain.RoomSuperior, Price: domain.Units(600), InService: true},
		{ID: 6, HotelID: 3, Number: "101", Floor: 1, Capacity: 2, SeaView: true, Type: domain.RoomDeluxe, Price: domain.Units(800), InService: true},
		{ID: 7, HotelID: 3, Number: "201", Floor: 2, Capacity: 4, SeaView: true, Type: domain.RoomSuite, Price: domain.Units(1200), InService: true},
	}

	people := []domain.Person{
		{ID: DemoGuestBurak, FirstName: "Burak", LastName: "Taşkın", Email: "burak@example.com", Phone: "555-111-22-33", LoyaltyPoints: 120},
		{ID: DemoGuestFeyza, FirstName: "Feyza", LastName: "Taşkın", Email: "feyza@example.com", Phone: "555-444-55-66", LoyaltyPoints: 50},
	}

	sat := nextSaturday(today)
	availability := []domain.AvailabilityEntry{
		{RoomID: 1, Start: today, End: today.AddDate(0, 0, 10), Status: domain.StatusAvailable, Note: "open range"},
		{RoomID: 6, Start: today, End: today.AddDate(0, 0, 10), Status: domain.StatusAvailable, Note: "open range"},
		{RoomID: 2, Start: today, End: today.AddDate(0, 0, 3), Status: domain.StatusBlocked, Note: "maintenance"},
		{RoomID: 5, Start: sat, End: sat.AddDate(0, 0, 2), Status: domain.StatusOutOfService, Note: "deep clean"},
	}

	reviews := []domain.Review{
		{ID: 1, Hotel: hotels[0], Person: people[0], Rating: 5, Comment: "Clean rooms, friendly staff."},
		{ID: 2, Hotel: hotels[0], Person: people[1], Rating: 4, Comment: "Great location."},
		{ID: 3, Hotel: hotels[1], Person: people[0], Rating: 5, Comment: "Amazing view."},
	}

	return domain.Catalog{Hotels: hotels, Rooms: rooms, People: people, Availability: availability, Reviews: reviews}
}

func nextSaturday(from time.Time) time.Time {
	return from.AddDate(0, 0, (int(time.Saturday)-int(from.Weekday())+7)%7)
}
