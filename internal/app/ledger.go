package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hotel_booking/internal/domain"
)

// Ledger answers availability questions over a room's AvailabilityEntry set and records or
// releases Reserved holds. Every mutation, and every check that precedes one, runs under a
// per-room mutex so check-and-block is a single critical section.
type Ledger struct {
	store domain.Store

	mu    sync.Mutex
	rooms map[int64]*roomLock
}

// roomLock is dropped from Ledger.rooms once nobody holds or waits on it, so ids that are
// never seen again (unknown rooms, deleted rooms) do not pin memory.
type roomLock struct {
	sync.Mutex
	refs int
}

func NewLedger(s domain.Store) *Ledger {
	return &Ledger{store: s, rooms: make(map[int64]*roomLock)}
}

// lock acquires the room's critical section and returns its release func.
func (l *Ledger) lock(roomID int64) func() {
	l.mu.Lock()
	m, ok := l.rooms[roomID]
	if !ok {
		m = &roomLock{}
		l.rooms[roomID] = m
	}
	m.refs++
	l.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		l.mu.Lock()
		if m.refs--; m.refs == 0 {
			delete(l.rooms, roomID)
		}
		l.mu.Unlock()
	}
}

// span normalizes [start, end) to calendar days. Both bounds are required.
func span(start, end time.Time) (time.Time, time.Time, error) {
	if start.IsZero() || end.IsZero() {
		return start, end, fmt.Errorf("start and end dates are required: %w", domain.ErrInvalidDateRange)
	}
	start, end = domain.Day(start), domain.Day(end)
	if !end.After(start) {
		return start, end, domain.ErrInvalidDateRange
	}
	return start, end, nil
}

// IsAvailable reports whether [start, end) is free for roomID. Unknown rooms and rooms taken out of
// service are never available.
func (l *Ledger) IsAvailable(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	start, end, err := span(start, end)
	if err != nil {
		return false, err
	}
	room, err := l.store.Room(ctx, roomID)
	if errors.Is(err, domain.ErrRoomNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !room.InService {
		return false, nil
	}
	return l.free(ctx, roomID, start, end)
}

func (l *Ledger) free(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	entries, err := l.store.Availability(ctx, roomID)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.Conflicts(start, end) {
			return false, nil
		}
	}
	return true, nil
}

// Block appends a Reserved entry without checking for overlap; callers that need the check use
// Reserve. An unknown room is left untouched and reported as ErrRoomNotFound.
func (l *Ledger) Block(ctx context.Context, roomID int64, start, end time.Time, note string) (domain.AvailabilityEntry, error) {
	start, end, err := span(start, end)
	if err != nil {
		return domain.AvailabilityEntry{}, err
	}
	release := l.lock(roomID)
	defer release()
	return l.insertHold(ctx, roomID, start, end, note)
}

// Reserve is the atomic form of IsAvailable followed by Block.
func (l *Ledger) Reserve(ctx context.Context, roomID int64, start, end time.Time, note string) (domain.AvailabilityEntry, error) {
	start, end, err := span(start, end)
	if err != nil {
		return domain.AvailabilityEntry{}, err
	}
	release := l.lock(roomID)
	defer release()

	room, err := l.store.Room(ctx, roomID)
	if err != nil {
		return domain.AvailabilityEntry{}, err
	}
	if !room.InService {
		return domain.AvailabilityEntry{}, domain.ErrRoomOutOfService
	}
	ok, err := l.free(ctx, roomID, start, end)
	if err != nil {
		return domain.AvailabilityEntry{}, err
	}
	if !ok {
		return domain.AvailabilityEntry{}, domain.ErrRoomUnavailable
	}
	return l.insertHold(ctx, roomID, start, end, note)
}

func (l *Ledger) insertHold(ctx context.Context, roomID int64, start, end time.Time, note string) (domain.AvailabilityEntry, error) {
	if note == "" {
		note = "Reserved"
	}
	return l.store.InsertAvailability(ctx, domain.AvailabilityEntry{
		RoomID: roomID,
		Start:  start,
		End:    end,
		Status: domain.StatusReserved,
		Note:   note,
	})
}

// Free removes every Reserved entry of roomID whose bounds equal [start, end) exactly and returns
// how many were removed. Freeing nothing is not an error.
func (l *Ledger) Free(ctx context.Context, roomID int64, start, end time.Time) (int, error) {
	start, end = domain.Day(start), domain.Day(end)
	release := l.lock(roomID)
	defer release()
	return l.store.DeleteReserved(ctx, roomID, start, end)
}

// Entries lists the room's ledger in insertion order.
func (l *Ledger) Entries(ctx context.Context, roomID int64) ([]domain.AvailabilityEntry, error) {
	return l.store.Availability(ctx, roomID)
}
