package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the core wraps exactly one of these.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnavailable  = errors.New("unavailable")
	ErrConflict     = errors.New("conflict")
)

var (
	ErrHotelNotFound       = fmt.Errorf("hotel %w", ErrNotFound)
	ErrRoomNotFound        = fmt.Errorf("room %w", ErrNotFound)
	ErrPersonNotFound      = fmt.Errorf("person %w", ErrNotFound)
	ErrReservationNotFound = fmt.Errorf("reservation %w", ErrNotFound)
	ErrReviewNotFound      = fmt.Errorf("review %w", ErrNotFound)
	ErrSessionNotFound     = fmt.Errorf("chat session %w", ErrNotFound)

	ErrInvalidDateRange = fmt.Errorf("check-out must be after check-in: %w", ErrInvalidInput)
	ErrInvalidRating    = fmt.Errorf("rating must be between 1 and 5: %w", ErrInvalidInput)
	ErrInvalidStars     = fmt.Errorf("star rating must be between 1 and 5: %w", ErrInvalidInput)
	ErrRoomNotInHotel   = fmt.Errorf("room does not belong to hotel: %w", ErrInvalidInput)
	ErrGuestRequired    = fmt.Errorf("person id or guest email required: %w", ErrInvalidInput)

	ErrRoomUnavailable  = fmt.Errorf("room not available for requested dates: %w", ErrUnavailable)
	ErrRoomOutOfService = fmt.Errorf("room is out of service: %w", ErrUnavailable)
)

// Kind returns the taxonomy bucket of err, or "internal" when it carries none.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.Is(err, ErrConflict):
		return "conflict"
	}
	return "internal"
}
