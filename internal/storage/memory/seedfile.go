package memory

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v2"

	"hotel_booking/internal/domain"
)

// SeedFile reads a catalog from a YAML document. Reviews reference guests by email.
type SeedFile struct{ Path string }

type seedDoc struct {
	Hotels       []domain.Hotel  `yaml:"hotels"`
	Rooms        []seedRoom      `yaml:"rooms"`
	People       []domain.Person `yaml:"people"`
	Availability []seedEntry     `yaml:"availability"`
	Reviews      []seedReview    `yaml:"reviews"`
}

type seedRoom struct {
	ID             int64        `yaml:"id"`
	HotelID        int64        `yaml:"hotel_id"`
	Number         string       `yaml:"number"`
	Floor          int          `yaml:"floor"`
	Capacity       int          `yaml:"capacity"`
	SeaView        bool         `yaml:"sea_view"`
	SmokingAllowed bool         `yaml:"smoking_allowed"`
	Type           string       `yaml:"type"`
	Price          domain.Money `yaml:"price"`
	InService      *bool        `yaml:"in_service"` // defaults to true
}

type seedEntry struct {
	RoomID int64  `yaml:"room_id"`
	Start  string `yaml:"start"`
	End    string `yaml:"end"`
	Status string `yaml:"status"`
	Note   string `yaml:"note"`
}

type seedReview struct {
	HotelID     int64  `yaml:"hotel_id"`
	PersonEmail string `yaml:"person_email"`
	Rating      int    `yaml:"rating"`
	Comment     string `yaml:"comment"`
}

func (f SeedFile) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return domain.Catalog{}, err
	}
	return ParseSeed(b)
}

// ParseSeed decodes and validates a YAML catalog.
func ParseSeed(b []byte) (domain.Catalog, error) {
	var doc seedDoc
	if err := yaml.UnmarshalStrict(b, &doc); err != nil {
		return domain.Catalog{}, fmt.Errorf("seed: %w", err)
	}

	c := domain.Catalog{Hotels: doc.Hotels, People: doc.People}
	for i := range c.People {
		if c.People[i].ID == "" {
			c.People[i].ID = uuid.NewString()
		}
	}
	for _, h := range doc.Hotels {
		if h.Stars < 1 || h.Stars > 5 {
			return domain.Catalog{}, fmt.Errorf("seed hotel %q: %w", h.Name, domain.ErrInvalidStars)
		}
	}
	for _, sr := range doc.Rooms {
		rt, err := domain.ParseRoomType(sr.Type)
		if err != nil {
			return domain.Catalog{}, fmt.Errorf("seed room %s: %w", sr.Number, err)
		}
		r := domain.Room{
			ID: sr.ID, HotelID: sr.HotelID, Number: sr.Number, Floor: sr.Floor,
			Capacity: sr.Capacity, SeaView: sr.SeaView, SmokingAllowed: sr.SmokingAllowed,
			Type: rt, Price: sr.Price, InService: sr.InService == nil || *sr.InService,
		}
		if err := r.Validate(); err != nil {
			return domain.Catalog{}, fmt.Errorf("seed room %s: %w", sr.Number, err)
		}
		c.Rooms = append(c.Rooms, r)
	}
	for _, se := range doc.Availability {
		start, err := domain.ParseDate(se.Start)
		if err != nil {
			return domain.Catalog{}, err
		}
		end, err := domain.ParseDate(se.End)
		if err != nil {
			return domain.Catalog{}, err
		}
		if !end.After(start) {
			return domain.Catalog{}, fmt.Errorf("seed availability room %d: %w", se.RoomID, domain.ErrInvalidDateRange)
		}
		st, err := domain.ParseAvailabilityStatus(se.Status)
		if err != nil {
			return domain.Catalog{}, err
		}
		c.Availability = append(c.Availability, domain.AvailabilityEntry{
			RoomID: se.RoomID, Start: start, End: end, Status: st, Note: se.Note,
		})
	}
	for _, sr := range doc.Reviews {
		if sr.Rating < 1 || sr.Rating > 5 {
			return domain.Catalog{}, fmt.Errorf("seed review by %s: %w", sr.PersonEmail, domain.ErrInvalidRating)
		}
		p, ok := findByEmail(c.People, sr.PersonEmail)
		if !ok {
			return domain.Catalog{}, fmt.Errorf("seed review by %s: %w", sr.PersonEmail, domain.ErrPersonNotFound)
		}
		c.Reviews = append(c.Reviews, domain.Review{
			Rating: sr.Rating, Comment: sr.Comment,
			Person: p, Hotel: domain.Hotel{ID: sr.HotelID},
		})
	}
	return c, nil
}

func findByEmail(people []domain.Person, email string) (domain.Person, bool) {
	for _, p := range people {
		if p.Email == email {
			return p, true
		}
	}
	return domain.Person{}, false
}
