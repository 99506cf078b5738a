package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"hotel_booking/internal/domain"
)

// Store is the process-lifetime Entity Store. All collections sit behind one RWMutex; slices keep
// insertion order so "first match" lookups are stable.
type Store struct {
	mu           sync.RWMutex
	hotels       []domain.Hotel
	rooms        []domain.Room
	people       []domain.Person
	availability []domain.AvailabilityEntry
	reservations []domain.Reservation
	reviews      []domain.Review
}

var _ domain.Store = (*Store)(nil)

func New() *Store { return &Store{} }

// NewFromCatalog builds a store and loads c, checking every cross reference.
func NewFromCatalog(c domain.Catalog) (*Store, error) {
	s := New()
	if err := s.Load(c); err != nil {
		return nil, err
	}
	return s, nil
}

// Load appends the catalog to the store. Explicit ids are kept; zero ids are assigned.
func (s *Store) Load(c domain.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, h := range c.Hotels {
		if h.ID == 0 {
			h.ID = s.nextHotelID()
		} else if _, ok := s.hotelIdx(h.ID); ok {
			return fmt.Errorf("seed hotel %d: duplicate id: %w", h.ID, domain.ErrConflict)
		}
		s.hotels = append(s.hotels, h)
	}
	for _, r := range c.Rooms {
		if _, ok := s.hotelIdx(r.HotelID); !ok {
			return fmt.Errorf("seed room %d: %w", r.ID, domain.ErrHotelNotFound)
		}
		if r.Type == "" {
			r.Type = domain.RoomStandard
		}
		if r.ID == 0 {
			r.ID = s.nextRoomID()
		} else if _, ok := s.roomIdx(r.ID); ok {
			return fmt.Errorf("seed room %d: duplicate id: %w", r.ID, domain.ErrConflict)
		}
		s.rooms = append(s.rooms, r)
	}
	for _, p := range c.People {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		s.people = append(s.people, p)
	}
	for _, e := range c.Availability {
		if _, ok := s.roomIdx(e.RoomID); !ok {
			return fmt.Errorf("seed availability for room %d: %w", e.RoomID, domain.ErrRoomNotFound)
		}
		e.Start, e.End = domain.Day(e.Start), domain.Day(e.End)
		if e.ID == 0 {
			e.ID = s.nextEntryID()
		}
		s.availability = append(s.availability, e)
	}
	for _, rv := range c.Reviews {
		pi, ok := s.personIdx(rv.Person.ID)
		if !ok {
			return fmt.Errorf("seed review %d: %w", rv.ID, domain.ErrPersonNotFound)
		}
		hi, ok := s.hotelIdx(rv.Hotel.ID)
		if !ok {
			return fmt.Errorf("seed review %d: %w", rv.ID, domain.ErrHotelNotFound)
		}
		rv.Person, rv.Hotel = s.people[pi], s.hotels[hi]
		if rv.ID == 0 {
			rv.ID = s.nextReviewID()
		}
		s.reviews = append(s.reviews, rv)
	}
	return nil
}

/********** hotels **********/

func (s *Store) Hotels(ctx context.Context) ([]domain.Hotel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Hotel(nil), s.hotels...), nil
}

func (s *Store) Hotel(ctx context.Context, id int64) (domain.Hotel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.hotelIdx(id)
	if !ok {
		return domain.Hotel{}, domain.ErrHotelNotFound
	}
	return s.hotels[i], nil
}

func (s *Store) InsertHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h.ID = s.nextHotelID()
	s.hotels = append(s.hotels, h)
	return h, nil
}

/********** rooms **********/

func (s *Store) Rooms(ctx context.Context) ([]domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Room(nil), s.rooms...), nil
}

func (s *Store) Room(ctx context.Context, id int64) (domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.roomIdx(id)
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return s.rooms[i], nil
}

func (s *Store) InsertRoom(ctx context.Context, r domain.Room) (domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hotelIdx(r.HotelID); !ok {
		return domain.Room{}, domain.ErrHotelNotFound
	}
	r.ID = s.nextRoomID()
	s.rooms = append(s.rooms, r)
	return r, nil
}

func (s *Store) SetRoomInService(ctx context.Context, id int64, inService bool) (domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.roomIdx(id)
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	s.rooms[i].InService = inService
	return s.rooms[i], nil
}

/********** people **********/

func (s *Store) People(ctx context.Context) ([]domain.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Person(nil), s.people...), nil
}

func (s *Store) Person(ctx context.Context, id string) (domain.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.personIdx(id)
	if !ok {
		return domain.Person{}, domain.ErrPersonNotFound
	}
	return s.people[i], nil
}

func (s *Store) InsertPerson(ctx context.Context, p domain.Person) (domain.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.NewString()
	s.people = append(s.people, p)
	return p, nil
}

func (s *Store) AddLoyaltyPoints(ctx context.Context, id string, points int) (domain.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.personIdx(id)
	if !ok {
		return domain.Person{}, domain.ErrPersonNotFound
	}
	s.people[i].LoyaltyPoints += points
	return s.people[i], nil
}

/********** availability ledger **********/

func (s *Store) Availability(ctx context.Context, roomID int64) ([]domain.AvailabilityEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.roomIdx(roomID); !ok {
		return nil, domain.ErrRoomNotFound
	}
	var out []domain.AvailabilityEntry
	for _, e := range s.availability {
		if e.RoomID == roomID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) InsertAvailability(ctx context.Context, e domain.AvailabilityEntry) (domain.AvailabilityEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roomIdx(e.RoomID); !ok {
		return domain.AvailabilityEntry{}, domain.ErrRoomNotFound
	}
	e.ID = s.nextEntryID()
	s.availability = append(s.availability, e)
	return e, nil
}

func (s *Store) DeleteReserved(ctx context.Context, roomID int64, start, end time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteReserved(roomID, start, end), nil
}

/********** reservations **********/

func (s *Store) Reservations(ctx context.Context) ([]domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Reservation(nil), s.reservations...), nil
}

func (s *Store) Reservation(ctx context.Context, id int64) (domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reservations {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Reservation{}, domain.ErrReservationNotFound
}

// CommitReservation validates every precondition before touching any collection, so an error
// leaves the store unchanged.
func (s *Store) CommitReservation(ctx context.Context, c domain.BookingCommit) (domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := c.Reservation
	hi, ok := s.hotelIdx(res.Hotel.ID)
	if !ok {
		return domain.Reservation{}, domain.ErrHotelNotFound
	}
	ri, ok := s.roomIdx(res.Room.ID)
	if !ok {
		return domain.Reservation{}, domain.ErrRoomNotFound
	}
	for _, e := range s.availability {
		if e.RoomID == res.Room.ID && e.Conflicts(res.CheckIn, res.CheckOut) {
			return domain.Reservation{}, fmt.Errorf("room %d already held %s..%s: %w",
				res.Room.ID, e.Start.Format(domain.DateLayout), e.End.Format(domain.DateLayout), domain.ErrConflict)
		}
	}

	pi := -1
	if c.NewGuest != nil {
		pi = s.personByEmail(c.NewGuest.Email)
		if pi < 0 {
			s.people = append(s.people, domain.Person{
				ID:        uuid.NewString(),
				FirstName: c.NewGuest.FirstName,
				LastName:  c.NewGuest.LastName,
				Email:     c.NewGuest.Email,
				Phone:     c.NewGuest.Phone,
			})
			pi = len(s.people) - 1
		}
	} else {
		if pi, ok = s.personIdx(res.Person.ID); !ok {
			return domain.Reservation{}, domain.ErrPersonNotFound
		}
	}

	res.ID = s.nextReservationID()
	hold := domain.AvailabilityEntry{
		ID:     s.nextEntryID(),
		RoomID: res.Room.ID,
		Start:  res.CheckIn,
		End:    res.CheckOut,
		Status: domain.StatusReserved,
		Note:   c.HoldNote,
	}
	s.availability = append(s.availability, hold)
	s.people[pi].LoyaltyPoints += c.Points

	res.Person, res.Hotel, res.Room = s.people[pi], s.hotels[hi], s.rooms[ri]
	s.reservations = append(s.reservations, res)
	return res, nil
}

func (s *Store) CancelReservation(ctx context.Context, id int64) (domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.reservations {
		if r.ID != id {
			continue
		}
		s.deleteReserved(r.Room.ID, r.CheckIn, r.CheckOut)
		s.reservations = append(s.reservations[:i], s.reservations[i+1:]...)
		return r, nil
	}
	return domain.Reservation{}, domain.ErrReservationNotFound
}

/********** reviews **********/

func (s *Store) Reviews(ctx context.Context) ([]domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Review(nil), s.reviews...), nil
}

func (s *Store) Review(ctx context.Context, id int64) (domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rv := range s.reviews {
		if rv.ID == id {
			return rv, nil
		}
	}
	return domain.Review{}, domain.ErrReviewNotFound
}

func (s *Store) CommitReview(ctx context.Context, rv domain.Review, points int) (domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pi, ok := s.personIdx(rv.Person.ID)
	if !ok {
		return domain.Review{}, domain.ErrPersonNotFound
	}
	hi, ok := s.hotelIdx(rv.Hotel.ID)
	if !ok {
		return domain.Review{}, domain.ErrHotelNotFound
	}
	s.people[pi].LoyaltyPoints += points
	rv.ID = s.nextReviewID()
	rv.Person, rv.Hotel = s.people[pi], s.hotels[hi]
	s.reviews = append(s.reviews, rv)
	return rv, nil
}

func (s *Store) DeleteReview(ctx context.Context, id int64) (domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rv := range s.reviews {
		if rv.ID == id {
			s.reviews = append(s.reviews[:i], s.reviews[i+1:]...)
			return rv, nil
		}
	}
	return domain.Review{}, domain.ErrReviewNotFound
}

/********** helpers (callers hold mu) **********/

func (s *Store) hotelIdx(id int64) (int, bool) {
	for i := range s.hotels {
		if s.hotels[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s *Store) roomIdx(id int64) (int, bool) {
	for i := range s.rooms {
		if s.rooms[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s *Store) personIdx(id string) (int, bool) {
	if id == "" {
		return -1, false
	}
	for i := range s.people {
		if s.people[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s *Store) personByEmail(email string) int {
	email = strings.TrimSpace(email)
	if email == "" {
		return -1
	}
	for i := range s.people {
		if strings.EqualFold(s.people[i].Email, email) {
			return i
		}
	}
	return -1
}

func (s *Store) deleteReserved(roomID int64, start, end time.Time) int {
	kept := s.availability[:0]
	removed := 0
	for _, e := range s.availability {
		if e.Matches(roomID, start, end) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.availability = kept
	return removed
}

// Identities are max existing id + 1, or 1 for an empty collection.

func (s *Store) nextHotelID() int64 {
	var top int64
	for _, h := range s.hotels {
		if h.ID > top {
			top = h.ID
		}
	}
	return top + 1
}

func (s *Store) nextRoomID() int64 {
	var top int64
	for _, r := range s.rooms {
		if r.ID > top {
			top = r.ID
		}
	}
	return top + 1
}

func (s *Store) nextEntryID() int64 {
	var top int64
	for _, e := range s.availability {
		if e.ID > top {
			top = e.ID
		}
	}
	return top + 1
}

func (s *Store) nextReservationID() int64 {
	var top int64
	for _, r := range s.reservations {
		if r.ID > top {
			top = r.ID
		}
	}
	return top + 1
}

func (s *Store) nextReviewID() int64 {
	var top int64
	for _, rv := range s.reviews {
		if rv.ID > top {
			top = rv.ID
		}
	}
	return top + 1
}
