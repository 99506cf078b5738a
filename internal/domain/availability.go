package domain

import (
	"fmt"
	"time"
)

type AvailabilityStatus string

const (
	StatusAvailable    AvailabilityStatus = "Available"
	StatusBlocked      AvailabilityStatus = "Blocked"
	StatusOutOfService AvailabilityStatus = "OutOfService"
	StatusReserved     AvailabilityStatus = "Reserved"
)

func ParseAvailabilityStatus(s string) (AvailabilityStatus, error) {
	switch AvailabilityStatus(s) {
	case StatusAvailable, StatusBlocked, StatusOutOfService, StatusReserved:
		return AvailabilityStatus(s), nil
	}
	return "", fmt.Errorf("unknown availability status %q: %w", s, ErrInvalidInput)
}

// AvailabilityEntry is one ledger line for a room over the half-open range [Start, End).
type AvailabilityEntry struct {
	ID     int64              `json:"id"`
	RoomID int64              `json:"room_id"`
	Start  time.Time          `json:"start_date"`
	End    time.Time          `json:"end_date"`
	Status AvailabilityStatus `json:"current_status"`
	Note   string             `json:"note,omitempty"`
}

// Holds reports whether the entry prevents new bookings.
func (e AvailabilityEntry) Holds() bool { return e.Status != StatusAvailable }

// Conflicts reports whether the entry blocks a booking of [start, end).
func (e AvailabilityEntry) Conflicts(start, end time.Time) bool {
	return e.Holds() && Overlaps(e.Start, e.End, start, end)
}

// Matches is the exact-bounds test used when freeing a Reserved entry.
func (e AvailabilityEntry) Matches(roomID int64, start, end time.Time) bool {
	return e.RoomID == roomID && e.Status == StatusReserved &&
		e.Start.Equal(start) && e.End.Equal(end)
}
