package httpserver

import (
	"context"
	"math"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hotel_booking/internal/domain"
)

/********** hotels **********/

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	minStars, hasStars, err := queryInt(r, "min_stars")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var hotels []domain.Hotel
	if city := r.URL.Query().Get("city"); city != "" {
		hotels, err = h.Svc.Hotels.SearchByCity(ctx, city)
	} else {
		hotels, err = h.Svc.Hotels.List(ctx)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	if hasStars {
		kept := hotels[:0]
		for _, ht := range hotels {
			if ht.Stars >= minStars {
				kept = append(kept, ht)
			}
		}
		hotels = kept
	}
	writeJSON(w, http.StatusOK, hotels)
}

type addHotelBody struct {
	Name    string         `json:"name"`
	Stars   int            `json:"star_rating"`
	Address domain.Address `json:"address"`
}

func (h *Handlers) addHotel(w http.ResponseWriter, r *http.Request) {
	var b addHotelBody
	if !decode(w, r, &b) {
		return
	}
	ht, err := h.Svc.Hotels.Add(r.Context(), b.Name, b.Stars, b.Address)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ht)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	hs, err := h.Svc.Queries.HotelSummary(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, hs)
}

func (h *Handlers) hotelRooms(w http.ResponseWriter, r *http.Request) {
	h.byHotel(w, r, func(ctx context.Context, id int64) (any, error) { return h.Svc.Rooms.ByHotel(ctx, id) })
}

func (h *Handlers) hotelReviews(w http.ResponseWriter, r *http.Request) {
	h.byHotel(w, r, func(ctx context.Context, id int64) (any, error) { return h.Svc.Reviews.ByHotel(ctx, id) })
}

func (h *Handlers) hotelReservations(w http.ResponseWriter, r *http.Request) {
	h.byHotel(w, r, func(ctx context.Context, id int64) (any, error) { return h.Svc.Reservations.ByHotel(ctx, id) })
}

func (h *Handlers) hotelRating(w http.ResponseWriter, r *http.Request) {
	h.byHotel(w, r, func(ctx context.Context, id int64) (any, error) {
		avg, n, err := h.Svc.Reviews.AverageRating(ctx, id)
		if err != nil {
			return nil, err
		}
		return map[string]any{"hotel_id": id, "average_rating": avg, "review_count": n}, nil
	})
}

// byHotel resolves the hotel first so an unknown id is a 404, not an empty list.
func (h *Handlers) byHotel(w http.ResponseWriter, r *http.Request, fn func(context.Context, int64) (any, error)) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, err := h.Svc.Hotels.Get(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	v, err := fn(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

/********** rooms **********/

// listRooms intersects every filter given in the query. Without filters it lists all rooms,
// including those out of service.
func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var filters []func() ([]domain.Room, error)

	minCap, ok, err := queryInt(r, "min_capacity")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if ok {
		filters = append(filters, func() ([]domain.Room, error) { return h.Svc.Rooms.SearchByCapacity(ctx, minCap) })
	}
	seaView, ok, err := queryBool(r, "sea_view")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if ok {
		filters = append(filters, func() ([]domain.Room, error) { return h.Svc.Rooms.SearchBySeaView(ctx, seaView) })
	}
	smoking, ok, err := queryBool(r, "smoking")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if ok {
		filters = append(filters, func() ([]domain.Room, error) { return h.Svc.Rooms.SearchBySmoking(ctx, smoking) })
	}
	if v := r.URL.Query().Get("type"); v != "" {
		rt, err := domain.ParseRoomType(v)
		if err != nil {
			writeError(w, r, err)
			return
		}
		filters = append(filters, func() ([]domain.Room, error) { return h.Svc.Rooms.SearchByType(ctx, rt) })
	}
	minPrice, hasMin, err := queryMoney(r, "min_price")
	if err != nil {
		writeError(w, r, err)
		return
	}
	maxPrice, hasMax, err := queryMoney(r, "max_price")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if hasMin || hasMax {
		if !hasMax {
			maxPrice = math.MaxInt64
		}
		filters = append(filters, func() ([]domain.Room, error) { return h.Svc.Rooms.SearchByPriceRange(ctx, minPrice, maxPrice) })
	}

	if len(filters) == 0 {
		rooms, err := h.Svc.Rooms.List(ctx)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, rooms)
		return
	}

	var out []domain.Room
	for i, f := range filters {
		rooms, err := f()
		if err != nil {
			writeError(w, r, err)
			return
		}
		if i == 0 {
			out = rooms
			continue
		}
		out = intersectRooms(out, rooms)
	}
	writeJSON(w, http.StatusOK, out)
}

func intersectRooms(a, b []domain.Room) []domain.Room {
	in := make(map[int64]bool, len(b))
	for _, r := range b {
		in[r.ID] = true
	}
	out := make([]domain.Room, 0, len(a))
	for _, r := range a {
		if in[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

type addRoomBody struct {
	HotelID        int64        `json:"hotel_id"`
	Number         string       `json:"room_number"`
	Floor          int          `json:"floor"`
	Capacity       int          `json:"capacity"`
	SeaView        bool         `json:"is_sea_view"`
	SmokingAllowed bool         `json:"is_smoking_allowed"`
	Type           string       `json:"room_type"`
	Price          domain.Money `json:"price"`
}

func (h *Handlers) addRoom(w http.ResponseWriter, r *http.Request) {
	var b addRoomBody
	if !decode(w, r, &b) {
		return
	}
	rt, err := domain.ParseRoomType(b.Type)
	if err != nil {
		writeError(w, r, err)
		return
	}
	room, err := h.Svc.Rooms.Add(r.Context(), domain.Room{
		HotelID: b.HotelID, Number: b.Number, Floor: b.Floor, Capacity: b.Capacity,
		SeaView: b.SeaView, SmokingAllowed: b.SmokingAllowed, Type: rt, Price: b.Price,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	room, err := h.Svc.Rooms.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (h *Handlers) setInService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var b struct {
		InService *bool `json:"in_service"`
	}
	if !decode(w, r, &b) {
		return
	}
	if b.InService == nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "in_service is required")
		return
	}
	room, err := h.Svc.Rooms.SetInService(r.Context(), id, *b.InService)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (h *Handlers) roomAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	entries, err := h.Svc.Rooms.ListAvailability(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []domain.AvailabilityEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handlers) checkAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	in, out, ok := queryRange(w, r)
	if !ok {
		return
	}
	free, err := h.Svc.Rooms.IsAvailable(r.Context(), id, in, out)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"room_id":   id,
		"check_in":  in.Format(domain.DateLayout),
		"check_out": out.Format(domain.DateLayout),
		"available": free,
	})
}

func (h *Handlers) blockRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var b struct {
		CheckIn  string `json:"check_in"`
		CheckOut string `json:"check_out"`
		Note     string `json:"note"`
		// Exclusive rejects the hold when the range is already taken.
		Exclusive bool `json:"exclusive"`
	}
	if !decode(w, r, &b) {
		return
	}
	in, err := domain.ParseDate(b.CheckIn)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := domain.ParseDate(b.CheckOut)
	if err != nil {
		writeError(w, r, err)
		return
	}
	hold := h.Svc.Rooms.Block
	if b.Exclusive {
		hold = h.Svc.Rooms.Reserve
	}
	e, err := hold(r.Context(), id, in, out, b.Note)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *Handlers) freeRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	in, out, ok := queryRange(w, r)
	if !ok {
		return
	}
	n, err := h.Svc.Rooms.Free(r.Context(), id, in, out)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"freed": n})
}

/********** people **********/

func (h *Handlers) listPeople(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	var (
		p   domain.Person
		err error
	)
	switch {
	case q.Get("email") != "":
		p, err = h.Svc.People.FindByEmail(ctx, q.Get("email"))
	case q.Get("phone") != "":
		p, err = h.Svc.People.FindByPhone(ctx, q.Get("phone"))
	default:
		people, err := h.Svc.People.List(ctx)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, people)
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, []domain.Person{p})
}

func (h *Handlers) createPerson(w http.ResponseWriter, r *http.Request) {
	var g domain.Guest
	if !decode(w, r, &g) {
		return
	}
	p, err := h.Svc.People.Create(r.Context(), g)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handlers) getPerson(w http.ResponseWriter, r *http.Request) {
	p, err := h.Svc.People.FindByID(r.Context(), personParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) addLoyalty(w http.ResponseWriter, r *http.Request) {
	id := personParam(r)
	var b struct {
		Points int `json:"points"`
	}
	if !decode(w, r, &b) {
		return
	}
	if err := h.Svc.People.AddLoyaltyPoints(r.Context(), id, b.Points); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) personReservations(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Svc.Reservations.ByPerson(r.Context(), personParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rs)
}

func (h *Handlers) personReviews(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Svc.Reviews.ByPerson(r.Context(), personParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rs)
}

func personParam(r *http.Request) string { return strings.TrimSpace(chi.URLParam(r, "id")) }
