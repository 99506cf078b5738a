package app

import (
	"context"
	"errors"
	"strings"

	"hotel_booking/internal/domain"
)

// ReviewPoints is credited to the author of every new review.
const ReviewPoints = 5

// ReviewService evicts the reviewed hotel's cached summary after every create and delete. A nil
// cache is allowed.
type ReviewService struct {
	store domain.Store
	cache domain.Cache
}

func NewReviewService(s domain.Store, c domain.Cache) *ReviewService {
	return &ReviewService{store: s, cache: c}
}

func (s *ReviewService) List(ctx context.Context) ([]domain.Review, error) {
	return s.store.Reviews(ctx)
}

func (s *ReviewService) Get(ctx context.Context, id int64) (domain.Review, error) {
	return s.store.Review(ctx, id)
}

func (s *ReviewService) ByHotel(ctx context.Context, hotelID int64) ([]domain.Review, error) {
	return s.filter(ctx, func(rv domain.Review) bool { return rv.Hotel.ID == hotelID })
}

func (s *ReviewService) ByPerson(ctx context.Context, personID string) ([]domain.Review, error) {
	return s.filter(ctx, func(rv domain.Review) bool { return rv.Person.ID == personID })
}

// Create records a 1..5 review and credits ReviewPoints to its author in the same commit.
func (s *ReviewService) Create(ctx context.Context, personID string, hotelID int64, rating int, comment string) (domain.Review, error) {
	if rating < 1 || rating > 5 {
		return domain.Review{}, domain.ErrInvalidRating
	}
	rv, err := s.store.CommitReview(ctx, domain.Review{
		Rating:  rating,
		Comment: strings.TrimSpace(comment),
		Person:  domain.Person{ID: personID},
		Hotel:   domain.Hotel{ID: hotelID},
	}, ReviewPoints)
	if err != nil {
		return domain.Review{}, err
	}
	s.invalidate(ctx, rv.Hotel.ID)
	return rv, nil
}

// Delete reports false when no review has the id.
func (s *ReviewService) Delete(ctx context.Context, id int64) (domain.Review, bool, error) {
	rv, err := s.store.DeleteReview(ctx, id)
	if errors.Is(err, domain.ErrReviewNotFound) {
		return domain.Review{}, false, nil
	}
	if err != nil {
		return domain.Review{}, false, err
	}
	s.invalidate(ctx, rv.Hotel.ID)
	return rv, true, nil
}

func (s *ReviewService) invalidate(ctx context.Context, hotelID int64) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, hotelKey(hotelID))
	}
}

// AverageRating returns the mean rating and review count of the hotel. A hotel without reviews
// averages 0.
func (s *ReviewService) AverageRating(ctx context.Context, hotelID int64) (float64, int, error) {
	rs, err := s.ByHotel(ctx, hotelID)
	if err != nil {
		return 0, 0, err
	}
	if len(rs) == 0 {
		return 0, 0, nil
	}
	sum := 0
	for _, rv := range rs {
		sum += rv.Rating
	}
	return float64(sum) / float64(len(rs)), len(rs), nil
}

func (s *ReviewService) filter(ctx context.Context, keep func(domain.Review) bool) ([]domain.Review, error) {
	all, err := s.store.Reviews(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Review, 0, len(all))
	for _, rv := range all {
		if keep(rv) {
			out = append(out, rv)
		}
	}
	return out, nil
}
