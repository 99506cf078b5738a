package app

import (
	"context"
	"fmt"
	"time"

	"hotel_booking/internal/domain"
)

// QueryService serves cache-aside read models. A nil cache disables caching.
type QueryService struct {
	hotels   *HotelService
	rooms    *RoomService
	reviews  *ReviewService
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(h *HotelService, r *RoomService, rv *ReviewService, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{hotels: h, rooms: r, reviews: rv, cache: c, cacheTTL: ttl}
}

func hotelKey(id int64) string { return fmt.Sprintf("hotel:%d", id) }

func (s *QueryService) HotelSummary(ctx context.Context, id int64) (domain.HotelSummary, error) {
	key := hotelKey(id)
	var hs domain.HotelSummary
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &hs); ok {
			return hs, nil
		}
	}

	h, err := s.hotels.Get(ctx, id)
	if err != nil {
		return domain.HotelSummary{}, err
	}
	avg, n, err := s.reviews.AverageRating(ctx, id)
	if err != nil {
		return domain.HotelSummary{}, err
	}
	rooms, err := s.rooms.ByHotel(ctx, id)
	if err != nil {
		return domain.HotelSummary{}, err
	}
	hs = domain.HotelSummary{Hotel: h, AverageRating: avg, ReviewCount: n, RoomCount: len(rooms)}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, hs, int(s.cacheTTL.Seconds()))
	}
	return hs, nil
}
