package app

import (
	"context"
	"fmt"
	"strings"

	"hotel_booking/internal/domain"
)

type HotelService struct {
	store domain.Store
}

func NewHotelService(s domain.Store) *HotelService {
	return &HotelService{store: s}
}

func (s *HotelService) List(ctx context.Context) ([]domain.Hotel, error) {
	return s.store.Hotels(ctx)
}

func (s *HotelService) Get(ctx context.Context, id int64) (domain.Hotel, error) {
	return s.store.Hotel(ctx, id)
}

// SearchByCity matches city as a case-insensitive substring of the hotel's city.
func (s *HotelService) SearchByCity(ctx context.Context, city string) ([]domain.Hotel, error) {
	needle := strings.ToLower(strings.TrimSpace(city))
	return s.filter(ctx, func(h domain.Hotel) bool {
		return strings.Contains(strings.ToLower(h.Address.City), needle)
	})
}

func (s *HotelService) SearchByMinStars(ctx context.Context, min int) ([]domain.Hotel, error) {
	return s.filter(ctx, func(h domain.Hotel) bool { return h.Stars >= min })
}

func (s *HotelService) Add(ctx context.Context, name string, stars int, addr domain.Address) (domain.Hotel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Hotel{}, fmt.Errorf("hotel name required: %w", domain.ErrInvalidInput)
	}
	if stars < 1 || stars > 5 {
		return domain.Hotel{}, domain.ErrInvalidStars
	}
	return s.store.InsertHotel(ctx, domain.Hotel{Name: name, Stars: stars, Address: addr})
}

func (s *HotelService) filter(ctx context.Context, keep func(domain.Hotel) bool) ([]domain.Hotel, error) {
	all, err := s.store.Hotels(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Hotel, 0, len(all))
	for _, h := range all {
		if keep(h) {
			out = append(out, h)
		}
	}
	return out, nil
}
