package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"hotel_booking/internal/domain"
)

// IndexingService turns the catalog into search documents and publishes them one hotel at a time.
type IndexingService struct {
	hotels  *HotelService
	rooms   *RoomService
	reviews *ReviewService
	index   domain.SearchIndexer
}

func NewIndexingService(h *HotelService, r *RoomService, rv *ReviewService, idx domain.SearchIndexer) *IndexingService {
	return &IndexingService{hotels: h, rooms: r, reviews: rv, index: idx}
}

func (s *IndexingService) IndexHotel(ctx context.Context, id int64) error {
	doc, err := s.Document(ctx, id)
	if err != nil {
		return err
	}
	if err := s.index.UpsertHotels(ctx, []domain.HotelDocument{doc}); err != nil {
		return fmt.Errorf("index hotel %d: %w", id, err)
	}
	return nil
}

// Document builds the hotel's search document. PricePerNight is the cheapest in-service room,
// 0 when the hotel has none.
func (s *IndexingService) Document(ctx context.Context, id int64) (domain.HotelDocument, error) {
	h, err := s.hotels.Get(ctx, id)
	if err != nil {
		return domain.HotelDocument{}, err
	}
	rooms, err := s.rooms.ByHotel(ctx, id)
	if err != nil {
		return domain.HotelDocument{}, err
	}
	avg, n, err := s.reviews.AverageRating(ctx, id)
	if err != nil {
		return domain.HotelDocument{}, err
	}

	doc := domain.HotelDocument{
		HotelID:       fmt.Sprint(h.ID),
		HotelName:     h.Name,
		City:          h.Address.City,
		Country:       h.Address.Country,
		Address:       formatAddress(h.Address),
		StarRating:    h.Stars,
		AverageRating: avg,
		ReviewCount:   n,
	}
	types := map[domain.RoomType]bool{}
	for _, r := range rooms {
		if !r.InService {
			continue
		}
		if doc.PricePerNight == 0 || r.Price < doc.PricePerNight {
			doc.PricePerNight = r.Price
		}
		types[r.Type] = true
		doc.HasSeaView = doc.HasSeaView || r.SeaView
		doc.SmokingRooms = doc.SmokingRooms || r.SmokingAllowed
	}
	names := make([]string, 0, len(types))
	for t := range types {
		names = append(names, string(t))
	}
	sort.Strings(names)
	doc.RoomTypes = strings.Join(names, ",")

	if doc.HasSeaView {
		doc.Highlights = append(doc.Highlights, "sea view")
	}
	if h.Stars >= 5 {
		doc.Highlights = append(doc.Highlights, "luxury")
	}
	if n > 0 && avg >= 4.5 {
		doc.Highlights = append(doc.Highlights, "top rated")
	}
	return doc, nil
}

func formatAddress(a domain.Address) string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.City, a.State, a.ZipCode, a.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
