package domain

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in cents. It travels as a plain decimal number ("320.5" in JSON and YAML,
// DECIMAL in SQL) and never passes through float64 on the way in.
type Money int64

// Units is n whole currency units.
func Units(n int64) Money { return Money(n * 100) }

func (m Money) Cents() int64 { return int64(m) }

// Times multiplies by a count, e.g. nights.
func (m Money) Times(n int) Money { return m * Money(n) }

func (m Money) String() string {
	sign, c := "", int64(m)
	if c < 0 {
		sign, c = "-", -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// ParseMoney reads a decimal amount with at most two significant fraction digits.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	bad := fmt.Errorf("invalid amount %q: %w", s, ErrInvalidInput)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" || strings.TrimLeft(whole, "0123456789") != "" || strings.TrimLeft(frac, "0123456789") != "" {
		return 0, bad
	}
	frac = strings.TrimRight(frac, "0")
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two decimals: %w", s, ErrInvalidInput)
	}
	frac += strings.Repeat("0", 2-len(frac))

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w > math.MaxInt64/100-1 {
		return 0, bad
	}
	f, _ := strconv.ParseInt(frac, 10, 64)
	c := w*100 + f
	if neg {
		c = -c
	}
	return Money(c), nil
}

// MarshalJSON drops a zero fraction so whole amounts stay integers on the wire.
func (m Money) MarshalJSON() ([]byte, error) {
	if m%100 == 0 {
		return []byte(strconv.FormatInt(int64(m/100), 10)), nil
	}
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (m *Money) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	return m.set(strings.Trim(string(b), `"`))
}

func (m *Money) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return m.set(s)
}

// Value stores the amount as a DECIMAL literal.
func (m Money) Value() (driver.Value, error) { return m.String(), nil }

func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return m.set(string(v))
	case string:
		return m.set(v)
	case int64:
		*m = Units(v)
		return nil
	case float64:
		*m = Money(math.Round(v * 100))
		return nil
	case nil:
		*m = 0
		return nil
	}
	return fmt.Errorf("cannot scan %T into Money", src)
}

func (m *Money) set(s string) error {
	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
