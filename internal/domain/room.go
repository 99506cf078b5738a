package domain

import (
	"fmt"
	"strings"
)

type RoomType string

const (
	RoomStandard     RoomType = "Standard"
	RoomDeluxe       RoomType = "Deluxe"
	RoomSuperior     RoomType = "Superior"
	RoomSuite        RoomType = "Suite"
	RoomPresidential RoomType = "Presidential"
)

var roomTypes = []RoomType{RoomStandard, RoomDeluxe, RoomSuperior, RoomSuite, RoomPresidential}

// ParseRoomType matches case-insensitively; empty input defaults to Standard.
func ParseRoomType(s string) (RoomType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RoomStandard, nil
	}
	for _, t := range roomTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown room type %q: %w", s, ErrInvalidInput)
}

type Room struct {
	ID             int64    `json:"id"`
	HotelID        int64    `json:"hotel_id"`
	Number         string   `json:"room_number"`
	Floor          int      `json:"floor"`
	Capacity       int      `json:"capacity"`
	SeaView        bool     `json:"is_sea_view"`
	SmokingAllowed bool     `json:"is_smoking_allowed"`
	Type           RoomType `json:"room_type"`
	Price          Money    `json:"price"`
	// InService=false withdraws the room from booking and from room searches.
	InService bool `json:"is_available"`
}

func (r Room) Validate() error {
	if strings.TrimSpace(r.Number) == "" {
		return fmt.Errorf("room number required: %w", ErrInvalidInput)
	}
	if r.Capacity < 1 {
		return fmt.Errorf("capacity must be >= 1: %w", ErrInvalidInput)
	}
	if r.Price < 0 {
		return fmt.Errorf("price must be >= 0: %w", ErrInvalidInput)
	}
	if _, err := ParseRoomType(string(r.Type)); err != nil {
		return err
	}
	return nil
}
