package httpserver

import (
	"fmt"
	"net/http"

	"hotel_booking/internal/adapters/functions"
	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

/********** reservations **********/

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Svc.Reservations.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rs)
}

// createReservationBody names the guest by person_id or by guest details.
type createReservationBody struct {
	PersonID string         `json:"person_id"`
	Guest    *domain.Guest  `json:"guest"`
	HotelID  int64          `json:"hotel_id"`
	RoomID   int64          `json:"room_id"`
	CheckIn  functions.Date `json:"check_in"`
	CheckOut functions.Date `json:"check_out"`
}

func (h *Handlers) createReservation(w http.ResponseWriter, r *http.Request) {
	var b createReservationBody
	if !decode(w, r, &b) {
		return
	}
	if b.CheckIn.IsZero() || b.CheckOut.IsZero() {
		writeError(w, r, fmt.Errorf("check_in and check_out are required: %w", domain.ErrInvalidInput))
		return
	}
	res, err := h.Svc.Reservations.Create(r.Context(), domain.ReservationRequest{
		PersonID: b.PersonID,
		Guest:    b.Guest,
		HotelID:  b.HotelID,
		RoomID:   b.RoomID,
		CheckIn:  b.CheckIn.Time,
		CheckOut: b.CheckOut.Time,
	})
	if err != nil {
		observability.ObserveReservation(domain.Kind(err))
		writeError(w, r, err)
		return
	}
	observability.ObserveReservation("created")
	w.Header().Set("Location", "/v1/reservations/"+itoa(res.ID))
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handlers) getReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, err := h.Svc.Reservations.ByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) cancelReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	cancelled, err := h.Svc.Reservations.Cancel(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !cancelled {
		writeError(w, r, domain.ErrReservationNotFound)
		return
	}
	observability.ObserveReservation("cancelled")
	w.WriteHeader(http.StatusNoContent)
}

/********** reviews **********/

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Svc.Reviews.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rs)
}

type createReviewBody struct {
	PersonID string `json:"person_id"`
	HotelID  int64  `json:"hotel_id"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var b createReviewBody
	if !decode(w, r, &b) {
		return
	}
	rv, err := h.Svc.Reviews.Create(r.Context(), b.PersonID, b.HotelID, b.Rating, b.Comment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

func (h *Handlers) getReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rv, err := h.Svc.Reviews.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	_, deleted, err := h.Svc.Reviews.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !deleted {
		writeError(w, r, domain.ErrReviewNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
