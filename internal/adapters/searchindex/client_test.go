package searchindex_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"hotel_booking/internal/adapters/searchindex"
	"hotel_booking/internal/domain"
)

var docs = []domain.HotelDocument{
	{HotelID: "1", HotelName: "Grand Hotel Istanbul", City: "Istanbul", StarRating: 5, PricePerNight: domain.Units(500)},
	{HotelID: "2", HotelName: "Ankara Palace Hotel", City: "Ankara", StarRating: 4, PricePerNight: domain.Units(400)},
}

func okAll(w http.ResponseWriter, keys ...string) {
	out := map[string]any{"value": []map[string]any{}}
	for _, k := range keys {
		out["value"] = append(out["value"].([]map[string]any), map[string]any{"key": k, "status": true, "statusCode": 200})
	}
	_ = json.NewEncoder(w).Encode(out)
}

func TestClient_UpsertHotels_SendsBatch(t *testing.T) {
	var got struct {
		Value []map[string]any `json:"value"`
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/indexes/hotels/docs/index" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("api-version") == "" {
			t.Errorf("missing api-version")
		}
		if r.Header.Get("api-key") != "test-key" {
			t.Errorf("api-key = %q", r.Header.Get("api-key"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		okAll(w, "1", "2")
	}))
	defer ts.Close()

	cl, err := searchindex.New(ts.URL+"/", "hotels", "test-key", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := cl.UpsertHotels(context.Background(), docs); err != nil {
		t.Fatalf("UpsertHotels: %v", err)
	}
	if len(got.Value) != 2 {
		t.Fatalf("sent %d docs", len(got.Value))
	}
	if got.Value[0]["@search.action"] != "mergeOrUpload" || got.Value[0]["HotelId"] != "1" {
		t.Fatalf("unexpected doc: %+v", got.Value[0])
	}
}

func TestClient_UpsertHotels_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1:
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
		case 2:
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			okAll(w, "1", "2")
		}
	}))
	defer ts.Close()

	cl, _ := searchindex.New(ts.URL, "hotels", "test-key", 100)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := cl.UpsertHotels(ctx, docs); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if atomic.LoadInt32(&hits) != 3 {
		t.Fatalf("expected 3 calls due to retries, got %d", hits)
	}
}

func TestClient_UpsertHotels_PartialFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMultiStatus)
		_, _ = w.Write([]byte(`{"value":[{"key":"1","status":true,"statusCode":200},` +
			`{"key":"2","status":false,"statusCode":400,"errorMessage":"bad field"}]}`))
	}))
	defer ts.Close()

	cl, _ := searchindex.New(ts.URL, "hotels", "test-key", 100)
	err := cl.UpsertHotels(context.Background(), docs)
	if err == nil || !strings.Contains(err.Error(), "bad field") {
		t.Fatalf("expected partial failure, got %v", err)
	}
}

func TestClient_UpsertHotels_Errors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, searchindex.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, searchindex.ErrForbidden},
		{"missing index", http.StatusNotFound, searchindex.ErrIndexMissing},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer ts.Close()

			cl, _ := searchindex.New(ts.URL, "hotels", "test-key", 100)
			if err := cl.UpsertHotels(context.Background(), docs); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestClient_UpsertHotels_EmptyIsNoop(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer ts.Close()

	cl, _ := searchindex.New(ts.URL, "hotels", "test-key", 100)
	if err := cl.UpsertHotels(context.Background(), nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if hits != 0 {
		t.Fatalf("empty batch hit the server")
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := searchindex.New("http://x", "hotels", "", 5); err == nil {
		t.Fatal("expected error without key")
	}
	if _, err := searchindex.New("", "hotels", "k", 5); err == nil {
		t.Fatal("expected error without base")
	}
}
