package observability_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record one sample per family so they are exported
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveReservation("created")
	observability.ObserveFunction("rooms.is_available", nil, time.Millisecond)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, want := range []string{
		"hotel_http_requests_total",
		`hotel_reservations_total{outcome="created"}`,
		`hotel_function_calls_total{name="rooms.is_available",status="ok"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output", want)
		}
	}
}

func TestLabelErr(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{domain.ErrRoomUnavailable, "unavailable"},
		{fmt.Errorf("wrapped: %w", domain.ErrHotelNotFound), "not_found"},
		{errors.New("boom"), "internal"},
	}
	for _, tc := range cases {
		if got := observability.LabelErr(tc.err); got != tc.want {
			t.Errorf("LabelErr(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
