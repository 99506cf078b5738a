package app

import (
	"context"
	"fmt"
	"time"

	"hotel_booking/internal/domain"
)

// RoomService is the room directory. Searches only return rooms that are in service; the
// availability operations delegate to the Ledger. Room changes evict the owning hotel's cached
// summary; a nil cache is allowed.
type RoomService struct {
	store  domain.Store
	ledger *Ledger
	cache  domain.Cache
}

func NewRoomService(s domain.Store, l *Ledger, c domain.Cache) *RoomService {
	return &RoomService{store: s, ledger: l, cache: c}
}

func (s *RoomService) List(ctx context.Context) ([]domain.Room, error) {
	return s.store.Rooms(ctx)
}

func (s *RoomService) Get(ctx context.Context, id int64) (domain.Room, error) {
	return s.store.Room(ctx, id)
}

func (s *RoomService) ByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	return s.filter(ctx, false, func(r domain.Room) bool { return r.HotelID == hotelID })
}

func (s *RoomService) SearchByCapacity(ctx context.Context, min int) ([]domain.Room, error) {
	return s.filter(ctx, true, func(r domain.Room) bool { return r.Capacity >= min })
}

func (s *RoomService) SearchBySeaView(ctx context.Context, seaView bool) ([]domain.Room, error) {
	return s.filter(ctx, true, func(r domain.Room) bool { return r.SeaView == seaView })
}

func (s *RoomService) SearchBySmoking(ctx context.Context, smoking bool) ([]domain.Room, error) {
	return s.filter(ctx, true, func(r domain.Room) bool { return r.SmokingAllowed == smoking })
}

func (s *RoomService) SearchByType(ctx context.Context, t domain.RoomType) ([]domain.Room, error) {
	return s.filter(ctx, true, func(r domain.Room) bool { return r.Type == t })
}

// SearchByPriceRange is inclusive on both ends.
func (s *RoomService) SearchByPriceRange(ctx context.Context, min, max domain.Money) ([]domain.Room, error) {
	if min < 0 || max < min {
		return nil, fmt.Errorf("price range %s..%s: %w", min, max, domain.ErrInvalidInput)
	}
	return s.filter(ctx, true, func(r domain.Room) bool { return r.Price >= min && r.Price <= max })
}

// Add registers a room under an existing hotel. New rooms start in service.
func (s *RoomService) Add(ctx context.Context, r domain.Room) (domain.Room, error) {
	if r.Type == "" {
		r.Type = domain.RoomStandard
	}
	if err := r.Validate(); err != nil {
		return domain.Room{}, err
	}
	if _, err := s.store.Hotel(ctx, r.HotelID); err != nil {
		return domain.Room{}, err
	}
	r.ID = 0
	r.InService = true
	added, err := s.store.InsertRoom(ctx, r)
	if err != nil {
		return domain.Room{}, err
	}
	s.invalidate(ctx, added.HotelID)
	return added, nil
}

func (s *RoomService) SetInService(ctx context.Context, id int64, inService bool) (domain.Room, error) {
	r, err := s.store.SetRoomInService(ctx, id, inService)
	if err != nil {
		return domain.Room{}, err
	}
	s.invalidate(ctx, r.HotelID)
	return r, nil
}

func (s *RoomService) invalidate(ctx context.Context, hotelID int64) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, hotelKey(hotelID))
	}
}

func (s *RoomService) IsAvailable(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	return s.ledger.IsAvailable(ctx, roomID, start, end)
}

func (s *RoomService) Block(ctx context.Context, roomID int64, start, end time.Time, note string) (domain.AvailabilityEntry, error) {
	return s.ledger.Block(ctx, roomID, start, end, note)
}

// Reserve holds the range only when it is free, checked and written under the room lock.
func (s *RoomService) Reserve(ctx context.Context, roomID int64, start, end time.Time, note string) (domain.AvailabilityEntry, error) {
	return s.ledger.Reserve(ctx, roomID, start, end, note)
}

func (s *RoomService) Free(ctx context.Context, roomID int64, start, end time.Time) (int, error) {
	return s.ledger.Free(ctx, roomID, start, end)
}

func (s *RoomService) ListAvailability(ctx context.Context, roomID int64) ([]domain.AvailabilityEntry, error) {
	if _, err := s.store.Room(ctx, roomID); err != nil {
		return nil, err
	}
	return s.ledger.Entries(ctx, roomID)
}

func (s *RoomService) filter(ctx context.Context, inServiceOnly bool, keep func(domain.Room) bool) ([]domain.Room, error) {
	all, err := s.store.Rooms(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Room, 0, len(all))
	for _, r := range all {
		if inServiceOnly && !r.InService {
			continue
		}
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}
