package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel_booking/internal/domain"
)

// ReservationService runs the booking workflow. Availability check, hold and loyalty credit for one
// room happen under that room's ledger lock, and the store commits them as one unit.
type ReservationService struct {
	store  domain.Store
	ledger *Ledger
	people *PersonService
}

func NewReservationService(s domain.Store, l *Ledger, p *PersonService) *ReservationService {
	return &ReservationService{store: s, ledger: l, people: p}
}

// Create books req.RoomID for [CheckIn, CheckOut). Validation order: person, hotel, room, dates,
// availability. Nothing is written unless every step succeeds.
func (s *ReservationService) Create(ctx context.Context, req domain.ReservationRequest) (domain.Reservation, error) {
	var (
		person   domain.Person
		newGuest *domain.Guest
	)
	switch {
	case req.PersonID != "":
		p, err := s.store.Person(ctx, req.PersonID)
		if err != nil {
			return domain.Reservation{}, err
		}
		person = p
	case req.Guest != nil && strings.TrimSpace(req.Guest.Email) != "":
		p, err := s.people.FindByEmail(ctx, req.Guest.Email)
		switch {
		case err == nil:
			person = p
		case errors.Is(err, domain.ErrPersonNotFound):
			g := *req.Guest
			g.Email = strings.TrimSpace(g.Email)
			newGuest = &g
		default:
			return domain.Reservation{}, err
		}
	default:
		return domain.Reservation{}, domain.ErrGuestRequired
	}

	hotel, err := s.store.Hotel(ctx, req.HotelID)
	if err != nil {
		return domain.Reservation{}, err
	}
	room, err := s.store.Room(ctx, req.RoomID)
	if err != nil {
		return domain.Reservation{}, err
	}
	if room.HotelID != hotel.ID {
		return domain.Reservation{}, domain.ErrRoomNotInHotel
	}

	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return domain.Reservation{}, fmt.Errorf("check-in and check-out are required: %w", domain.ErrInvalidDateRange)
	}
	in, out := domain.Day(req.CheckIn), domain.Day(req.CheckOut)
	nights := domain.Nights(in, out)
	if nights <= 0 {
		return domain.Reservation{}, domain.ErrInvalidDateRange
	}

	release := s.ledger.lock(room.ID)
	defer release()

	// re-read under the lock so a concurrent SetInService is observed
	room, err = s.store.Room(ctx, room.ID)
	if err != nil {
		return domain.Reservation{}, err
	}
	if !room.InService {
		return domain.Reservation{}, domain.ErrRoomOutOfService
	}
	free, err := s.ledger.free(ctx, room.ID, in, out)
	if err != nil {
		return domain.Reservation{}, err
	}
	if !free {
		return domain.Reservation{}, domain.ErrRoomUnavailable
	}

	total := room.Price.Times(nights)
	guestName := person.FirstName + " " + person.LastName
	if newGuest != nil {
		guestName = newGuest.FirstName + " " + newGuest.LastName
	}
	return s.store.CommitReservation(ctx, domain.BookingCommit{
		Reservation: domain.Reservation{
			Person:     person,
			Hotel:      hotel,
			Room:       room,
			CheckIn:    in,
			CheckOut:   out,
			Nights:     nights,
			TotalPrice: total,
		},
		NewGuest: newGuest,
		HoldNote: fmt.Sprintf("Reserved for %s", strings.TrimSpace(guestName)),
		Points:   LoyaltyPointsFor(total),
	})
}

// LoyaltyPointsFor is one point per 10 currency units of the total, rounded down.
func LoyaltyPointsFor(total domain.Money) int {
	if total <= 0 {
		return 0
	}
	return int(total.Cents() / domain.Units(10).Cents())
}

// Cancel removes the reservation and frees its hold. It reports false when no such reservation
// exists. Loyalty points awarded at booking are kept.
func (s *ReservationService) Cancel(ctx context.Context, id int64) (bool, error) {
	r, err := s.store.Reservation(ctx, id)
	if errors.Is(err, domain.ErrReservationNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	release := s.ledger.lock(r.Room.ID)
	defer release()

	if _, err := s.store.CancelReservation(ctx, id); err != nil {
		if errors.Is(err, domain.ErrReservationNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *ReservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	return s.store.Reservations(ctx)
}

func (s *ReservationService) ByID(ctx context.Context, id int64) (domain.Reservation, error) {
	return s.store.Reservation(ctx, id)
}

func (s *ReservationService) ByHotel(ctx context.Context, hotelID int64) ([]domain.Reservation, error) {
	return s.filter(ctx, func(r domain.Reservation) bool { return r.Hotel.ID == hotelID })
}

func (s *ReservationService) ByPerson(ctx context.Context, personID string) ([]domain.Reservation, error) {
	return s.filter(ctx, func(r domain.Reservation) bool { return r.Person.ID == personID })
}

func (s *ReservationService) filter(ctx context.Context, keep func(domain.Reservation) bool) ([]domain.Reservation, error) {
	all, err := s.store.Reservations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Reservation, 0, len(all))
	for _, r := range all {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}
