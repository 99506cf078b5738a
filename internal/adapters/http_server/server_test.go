package httpserver_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"hotel_booking/internal/adapters/functions"
	httpserver "hotel_booking/internal/adapters/http_server"
	redisad "hotel_booking/internal/adapters/redis"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/storage/memory"
)

var today = time.Date(2030, 3, 13, 0, 0, 0, 0, time.UTC)

type env struct {
	ts  *httptest.Server
	svc *app.Services
}

func newEnv(t *testing.T, limit *rate.Limiter) *env {
	t.Helper()
	st, err := memory.NewFromCatalog(memory.DemoCatalog(today))
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })

	svc := app.NewServices(st, redisad.NewFromClient(rc), time.Minute)
	srv := httpserver.New(5 * time.Second)
	srv.MountHandlers(&httpserver.Handlers{
		Svc:       svc,
		Funcs:     functions.NewRegistry(svc, 2, zerolog.Nop()),
		Sessions:  redisad.NewSessions(rc, time.Hour),
		FuncLimit: limit,
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return &env{ts: ts, svc: svc}
}

func (e *env) do(t *testing.T, method, path string, body any, hdr ...string) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		raw, _ := json.Marshal(b)
		rd = bytes.NewReader(raw)
	}
	req, _ := http.NewRequest(method, e.ts.URL+path, rd)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp, out
}

func TestHealthz(t *testing.T) {
	e := newEnv(t, nil)
	resp, body := e.do(t, "GET", "/healthz", nil)
	if resp.StatusCode != 200 || string(body) != "ok" {
		t.Fatalf("healthz: %d %s", resp.StatusCode, body)
	}
}

func TestGetHotel_ETag(t *testing.T) {
	e := newEnv(t, nil)
	resp, body := e.do(t, "GET", "/v1/hotels/1", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("status: %d %s", resp.StatusCode, body)
	}
	var hs domain.HotelSummary
	_ = json.Unmarshal(body, &hs)
	if hs.Hotel.Name != "Grand Hotel Istanbul" || hs.AverageRating != 4.5 || hs.RoomCount != 3 {
		t.Fatalf("unexpected summary: %+v", hs)
	}
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag")
	}
	resp, _ = e.do(t, "GET", "/v1/hotels/1", nil, "If-None-Match", etag)
	if resp.StatusCode != http.StatusNotModified {
		t.Fatalf("want 304, got %d", resp.StatusCode)
	}

	// a new review changes the summary and therefore the ETag
	resp, body = e.do(t, "POST", "/v1/reviews", map[string]any{"person_id": memory.DemoGuestFeyza, "hotel_id": 1, "rating": 3})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create review: %d %s", resp.StatusCode, body)
	}
	resp, _ = e.do(t, "GET", "/v1/hotels/1", nil, "If-None-Match", etag)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want fresh 200 after review, got %d", resp.StatusCode)
	}
}

func TestGetHotel_RoomAddedRefreshesSummary(t *testing.T) {
	e := newEnv(t, nil)
	resp, body := e.do(t, "GET", "/v1/hotels/2", nil)
	var before domain.HotelSummary
	_ = json.Unmarshal(body, &before)
	etag := resp.Header.Get("ETag")

	resp, body = e.do(t, "POST", "/v1/rooms", map[string]any{"hotel_id": 2, "room_number": "302", "capacity": 2, "price": "410.50"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add room: %d %s", resp.StatusCode, body)
	}
	resp, body = e.do(t, "GET", "/v1/hotels/2", nil, "If-None-Match", etag)
	var after domain.HotelSummary
	_ = json.Unmarshal(body, &after)
	if resp.StatusCode != http.StatusOK || after.RoomCount != before.RoomCount+1 {
		t.Fatalf("cached summary served after room add: %d %s", resp.StatusCode, body)
	}
}

func TestErrorMapping(t *testing.T) {
	e := newEnv(t, nil)
	cases := []struct {
		method, path string
		body         any
		status       int
	}{
		{"GET", "/v1/hotels/99", nil, 404},
		{"GET", "/v1/hotels/abc", nil, 400},
		{"GET", "/v1/hotels/99/rooms", nil, 404},
		{"GET", "/v1/rooms?min_capacity=lots", nil, 400},
		{"GET", "/v1/rooms?type=Penthouse", nil, 400},
		{"GET", "/v1/rooms/1/availability/check?check_in=2030-03-20", nil, 400},
		{"POST", "/v1/hotels", map[string]any{"name": "X", "star_rating": 7}, 400},
		{"POST", "/v1/hotels", `{"name":`, 400},
		{"POST", "/v1/hotels", map[string]any{"name": "X", "star_rating": 3, "pool": true}, 400},
		{"POST", "/v1/reservations", map[string]any{"person_id": memory.DemoGuestBurak, "hotel_id": 1, "room_id": 2, "check_in": "2030-03-14", "check_out": "2030-03-15"}, 409},
		{"POST", "/v1/reservations", map[string]any{"person_id": memory.DemoGuestBurak, "hotel_id": 1, "room_id": 1, "check_in": "soon", "check_out": "2030-03-15"}, 400},
		{"POST", "/v1/reservations", map[string]any{"person_id": memory.DemoGuestBurak, "hotel_id": 1, "room_id": 1, "check_out": "2030-04-15"}, 400},
		{"POST", "/v1/reservations", map[string]any{"person_id": memory.DemoGuestBurak, "hotel_id": 1, "room_id": 1, "check_in": "2030-04-14"}, 400},
		{"POST", "/v1/rooms/1/blocks", map[string]any{"check_out": "2030-04-15"}, 400},
		{"GET", "/v1/rooms?min_price=10.001", nil, 400},
		{"DELETE", "/v1/reservations/42", nil, 404},
		{"DELETE", "/v1/reviews/42", nil, 404},
		{"GET", "/v1/people/nobody", nil, 404},
		{"GET", "/v1/people?email=nobody@example.com", nil, 404},
		{"PUT", "/v1/rooms/1/in-service", map[string]any{}, 400},
		{"POST", "/v1/chat/sessions/missing/messages", map[string]any{"role": "user", "content": "hi"}, 404},
		{"POST", "/v1/functions/rooms.teleport", `{}`, 404},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp, body := e.do(t, tc.method, tc.path, tc.body)
			if resp.StatusCode != tc.status {
				t.Fatalf("want %d, got %d: %s", tc.status, resp.StatusCode, body)
			}
			if ct := resp.Header.Get("Content-Type"); ct != "application/problem+json" {
				t.Fatalf("want problem+json, got %q", ct)
			}
		})
	}
}

func TestReservationLifecycle(t *testing.T) {
	e := newEnv(t, nil)

	resp, body := e.do(t, "GET", "/v1/rooms/3/availability/check?check_in=2030-04-01&check_out=2030-04-04", nil)
	if resp.StatusCode != 200 || !strings.Contains(string(body), `"available":true`) {
		t.Fatalf("check: %d %s", resp.StatusCode, body)
	}

	resp, body = e.do(t, "POST", "/v1/reservations", map[string]any{
		"guest":    map[string]any{"first_name": "Cem", "last_name": "Kaya", "email": "cem@example.com"},
		"hotel_id": 1, "room_id": 3, "check_in": "2030-04-01", "check_out": "2030-04-04",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: %d %s", resp.StatusCode, body)
	}
	var res domain.Reservation
	_ = json.Unmarshal(body, &res)
	if res.TotalPrice != domain.Units(3000) || res.Person.LoyaltyPoints != 300 {
		t.Fatalf("unexpected reservation: %+v", res)
	}
	if loc := resp.Header.Get("Location"); loc != fmt.Sprintf("/v1/reservations/%d", res.ID) {
		t.Fatalf("location: %q", loc)
	}

	resp, _ = e.do(t, "GET", "/v1/people/"+res.Person.ID+"/reservations", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("by person: %d", resp.StatusCode)
	}

	resp, body = e.do(t, "GET", "/v1/rooms/3/availability/check?check_in=2030-04-03&check_out=2030-04-05", nil)
	if !strings.Contains(string(body), `"available":false`) {
		t.Fatalf("room still available after booking: %s", body)
	}

	resp, _ = e.do(t, "DELETE", fmt.Sprintf("/v1/reservations/%d", res.ID), nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("cancel: %d", resp.StatusCode)
	}
	resp, _ = e.do(t, "GET", fmt.Sprintf("/v1/reservations/%d", res.ID), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("cancelled reservation still served: %d", resp.StatusCode)
	}
}

func TestRoomsFilterAndBlocks(t *testing.T) {
	e := newEnv(t, nil)

	resp, body := e.do(t, "GET", "/v1/rooms?sea_view=true&min_capacity=4", nil)
	var rooms []domain.Room
	_ = json.Unmarshal(body, &rooms)
	if resp.StatusCode != 200 || len(rooms) != 2 || rooms[0].ID != 3 || rooms[1].ID != 7 {
		t.Fatalf("filter: %d %s", resp.StatusCode, body)
	}

	resp, body = e.do(t, "POST", "/v1/rooms/4/blocks", map[string]any{"check_in": "2030-05-01", "check_out": "2030-05-03", "note": "VIP hold"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("block: %d %s", resp.StatusCode, body)
	}
	resp, body = e.do(t, "DELETE", "/v1/rooms/4/blocks?check_in=2030-05-01&check_out=2030-05-03", nil)
	if resp.StatusCode != 200 || strings.TrimSpace(string(body)) != `{"freed":1}` {
		t.Fatalf("free: %d %s", resp.StatusCode, body)
	}

	resp, body = e.do(t, "POST", "/v1/rooms/2/blocks", map[string]any{"check_in": "2030-03-14", "check_out": "2030-03-15", "exclusive": true})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("exclusive hold over maintenance: %d %s", resp.StatusCode, body)
	}

	resp, body = e.do(t, "PUT", "/v1/rooms/4/in-service", map[string]any{"in_service": false})
	if resp.StatusCode != 200 || !strings.Contains(string(body), `"is_available":false`) {
		t.Fatalf("set in service: %d %s", resp.StatusCode, body)
	}
	resp, body = e.do(t, "GET", "/v1/rooms?smoking=true", nil)
	if strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("out-of-service room listed by search: %s", body)
	}
}

func TestFunctionRoutes(t *testing.T) {
	e := newEnv(t, nil)

	resp, body := e.do(t, "GET", "/v1/functions", nil)
	if resp.StatusCode != 200 || !strings.Contains(string(body), `"reservations.create_with_new_person"`) {
		t.Fatalf("definitions: %d", resp.StatusCode)
	}

	resp, body = e.do(t, "POST", "/v1/functions/reviews.average_rating", `{"hotel_id":2}`)
	if resp.StatusCode != 200 || strings.TrimSpace(string(body)) != `{"result":{"hotel_id":2,"average_rating":5,"review_count":1}}` {
		t.Fatalf("call: %d %s", resp.StatusCode, body)
	}

	resp, body = e.do(t, "POST", "/v1/functions:batch", map[string]any{"calls": []map[string]any{
		{"id": "1", "name": "hotels.search_by_stars", "arguments": map[string]any{"min_stars": 5}},
		{"id": "2", "name": "rooms.get", "arguments": map[string]any{"room_id": 99}},
	}})
	var out struct {
		Results []functions.Result `json:"results"`
	}
	_ = json.Unmarshal(body, &out)
	if resp.StatusCode != 200 || len(out.Results) != 2 || out.Results[0].Error != nil || out.Results[1].Error.Kind != "not_found" {
		t.Fatalf("batch: %d %s", resp.StatusCode, body)
	}
}

func TestFunctionRoutes_RateLimited(t *testing.T) {
	e := newEnv(t, rate.NewLimiter(rate.Every(time.Hour), 1))

	resp, _ := e.do(t, "POST", "/v1/functions/hotels.list", `{}`)
	if resp.StatusCode != 200 {
		t.Fatalf("first call: %d", resp.StatusCode)
	}
	resp, _ = e.do(t, "POST", "/v1/functions/hotels.list", `{}`)
	if resp.StatusCode != http.StatusTooManyRequests || resp.Header.Get("Retry-After") == "" {
		t.Fatalf("want 429 with Retry-After, got %d", resp.StatusCode)
	}
	// plain REST routes are not limited
	resp, _ = e.do(t, "GET", "/v1/hotels", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("rest route limited: %d", resp.StatusCode)
	}
}

func TestChatSession(t *testing.T) {
	e := newEnv(t, nil)

	resp, body := e.do(t, "POST", "/v1/chat/sessions", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: %d %s", resp.StatusCode, body)
	}
	var sess domain.ChatSession
	_ = json.Unmarshal(body, &sess)

	base := "/v1/chat/sessions/" + sess.ID
	resp, body = e.do(t, "POST", base+"/messages", map[string]any{"role": "user", "content": "Book room 6 for Feyza"})
	if resp.StatusCode != 200 {
		t.Fatalf("append: %d %s", resp.StatusCode, body)
	}
	resp, _ = e.do(t, "POST", base+"/messages", map[string]any{"role": "tool", "content": "x"})
	if resp.StatusCode != 400 {
		t.Fatalf("tool role must be rejected on /messages, got %d", resp.StatusCode)
	}

	resp, body = e.do(t, "POST", base+"/calls", map[string]any{"calls": []map[string]any{
		{"id": "c1", "name": "reservations.create", "arguments": map[string]any{
			"person_id": memory.DemoGuestFeyza, "hotel_id": 3, "room_id": 6, "check_in": "2030-03-14", "check_out": "2030-03-16",
		}},
	}})
	if resp.StatusCode != 200 {
		t.Fatalf("calls: %d %s", resp.StatusCode, body)
	}

	resp, body = e.do(t, "GET", base+"/history", nil)
	var hist []domain.ChatMessage
	_ = json.Unmarshal(body, &hist)
	if resp.StatusCode != 200 || len(hist) != 2 || hist[1].Role != domain.RoleTool || hist[1].Name != "reservations.create" {
		t.Fatalf("history: %d %s", resp.StatusCode, body)
	}
	if !strings.Contains(hist[1].Content, `"total_price":1600`) {
		t.Fatalf("tool message lacks result: %s", hist[1].Content)
	}

	resp, body = e.do(t, "GET", base, nil)
	_ = json.Unmarshal(body, &sess)
	if resp.StatusCode != 200 || sess.MessageCount != 2 {
		t.Fatalf("session: %d %s", resp.StatusCode, body)
	}
}
