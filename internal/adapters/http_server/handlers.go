package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"hotel_booking/internal/adapters/functions"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

type Handlers struct {
	Svc      *app.Services
	Funcs    *functions.Registry
	Sessions domain.ChatSessionStore
	// FuncLimit guards the function and chat call routes; nil disables limiting.
	FuncLimit *rate.Limiter
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/hotels", h.listHotels)
		r.Post("/hotels", h.addHotel)
		r.Get("/hotels/{id}", h.getHotel)
		r.Get("/hotels/{id}/rooms", h.hotelRooms)
		r.Get("/hotels/{id}/reviews", h.hotelReviews)
		r.Get("/hotels/{id}/reservations", h.hotelReservations)
		r.Get("/hotels/{id}/rating", h.hotelRating)

		r.Get("/rooms", h.listRooms)
		r.Post("/rooms", h.addRoom)
		r.Get("/rooms/{id}", h.getRoom)
		r.Put("/rooms/{id}/in-service", h.setInService)
		r.Get("/rooms/{id}/availability", h.roomAvailability)
		r.Get("/rooms/{id}/availability/check", h.checkAvailability)
		r.Post("/rooms/{id}/blocks", h.blockRoom)
		r.Delete("/rooms/{id}/blocks", h.freeRoom)

		r.Get("/people", h.listPeople)
		r.Post("/people", h.createPerson)
		r.Get("/people/{id}", h.getPerson)
		r.Post("/people/{id}/loyalty", h.addLoyalty)
		r.Get("/people/{id}/reservations", h.personReservations)
		r.Get("/people/{id}/reviews", h.personReviews)

		r.Get("/reservations", h.listReservations)
		r.Post("/reservations", h.createReservation)
		r.Get("/reservations/{id}", h.getReservation)
		r.Delete("/reservations/{id}", h.cancelReservation)

		r.Get("/reviews", h.listReviews)
		r.Post("/reviews", h.createReview)
		r.Get("/reviews/{id}", h.getReview)
		r.Delete("/reviews/{id}", h.deleteReview)

		r.Get("/functions", h.listFunctions)
		r.Group(func(r chi.Router) {
			if h.FuncLimit != nil {
				r.Use(RateLimit(h.FuncLimit))
			}
			r.Post("/functions/{name}", h.callFunction)
			r.Post("/functions:batch", h.callBatch)
			r.Post("/chat/sessions/{id}/calls", h.chatCalls)
		})

		r.Post("/chat/sessions", h.createSession)
		r.Get("/chat/sessions/{id}", h.getSession)
		r.Get("/chat/sessions/{id}/history", h.sessionHistory)
		r.Post("/chat/sessions/{id}/messages", h.appendMessage)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps the error kind to a status code. Internal errors are logged and their detail
// withheld.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch domain.Kind(err) {
	case "not_found":
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case "invalid_input":
		writeProblem(w, http.StatusBadRequest, "Invalid Input", err.Error())
	case "unavailable":
		writeProblem(w, http.StatusConflict, "Unavailable", err.Error())
	case "conflict":
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached writes v with an ETag and answers a matching If-None-Match with 304.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write cached body")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// decode reads a JSON body into dst, rejecting unknown fields.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if domain.Kind(err) == "invalid_input" {
			writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
			return false
		}
		writeProblem(w, http.StatusBadRequest, "Invalid Body", fmt.Sprintf("malformed JSON: %v", err))
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return 0, false
	}
	return id, true
}

// queryRange parses check_in and check_out query parameters.
func queryRange(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	in, err := domain.ParseDate(r.URL.Query().Get("check_in"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Date", fmt.Sprintf("check_in: %v", err))
		return time.Time{}, time.Time{}, false
	}
	out, err := domain.ParseDate(r.URL.Query().Get("check_out"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Date", fmt.Sprintf("check_out: %v", err))
		return time.Time{}, time.Time{}, false
	}
	return in, out, true
}

func queryInt(r *http.Request, key string) (int, bool, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("%s must be an integer: %w", key, domain.ErrInvalidInput)
	}
	return n, true, nil
}

func queryBool(r *http.Request, key string) (bool, bool, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return false, false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false, fmt.Errorf("%s must be true or false: %w", key, domain.ErrInvalidInput)
	}
	return b, true, nil
}

func queryMoney(r *http.Request, key string) (domain.Money, bool, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, false, nil
	}
	m, err := domain.ParseMoney(v)
	if err != nil {
		return 0, false, fmt.Errorf("%s must be an amount: %w", key, domain.ErrInvalidInput)
	}
	return m, true, nil
}
