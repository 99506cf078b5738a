package domain

import (
	"testing"
	"time"
)

func TestNights(t *testing.T) {
	d := func(s string) time.Time {
		t.Helper()
		v, err := time.Parse(DateLayout, s)
		if err != nil {
			t.Fatal(err)
		}
		return v
	}
	cases := []struct {
		name    string
		in, out string
		want    int
	}{
		{"one night", "2030-03-10", "2030-03-11", 1},
		{"same day", "2030-03-10", "2030-03-10", 0},
		{"reversed", "2030-03-13", "2030-03-10", -3},
		{"leap day", "2032-02-28", "2032-03-01", 2},
		{"past duration range", "2031-01-01", "2400-01-01", 134774},
		{"reversed past duration range", "2400-01-01", "2031-01-01", -134774},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Nights(d(tc.in), d(tc.out)); got != tc.want {
				t.Fatalf("Nights(%s, %s) = %d, want %d", tc.in, tc.out, got, tc.want)
			}
		})
	}

	late := time.Date(2030, 3, 10, 23, 30, 0, 0, time.UTC)
	if got := Nights(late, d("2030-03-11")); got != 1 {
		t.Fatalf("time of day must be ignored, got %d", got)
	}
}
