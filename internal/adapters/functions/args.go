package functions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"hotel_booking/internal/domain"
)

// Date accepts YYYY-MM-DD or RFC 3339 and normalises to a calendar day.
type Date struct{ time.Time }

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", domain.ErrInvalidInput)
	}
	t, err := domain.ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(domain.DateLayout))
}

var (
	dateType  = reflect.TypeOf(Date{})
	moneyType = reflect.TypeOf(domain.Money(0))
)

// paramsOf derives the parameter list from A's exported json-tagged fields. Fields without
// omitempty are required; the desc tag becomes the description.
func paramsOf[A any]() []Param {
	return paramsOfType(reflect.TypeOf((*A)(nil)).Elem())
}

func paramsOfType(t reflect.Type) []Param {
	if t.Kind() != reflect.Struct {
		return nil
	}
	out := make([]Param, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "" && f.Anonymous {
			out = append(out, paramsOfType(f.Type)...)
			continue
		}
		if tag == "" || tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		p := Param{
			Name:        name,
			Required:    !strings.Contains(opts, "omitempty"),
			Description: f.Tag.Get("desc"),
		}
		switch {
		case f.Type == dateType:
			p.Type, p.Format = "string", "date"
		case f.Type == moneyType:
			p.Type = "number"
		case f.Type.Kind() == reflect.String:
			p.Type = "string"
		case f.Type.Kind() == reflect.Bool:
			p.Type = "boolean"
		case f.Type.Kind() == reflect.Float32 || f.Type.Kind() == reflect.Float64:
			p.Type = "number"
		default:
			p.Type = "integer"
		}
		out = append(out, p)
	}
	return out
}

// decodeArgs checks required parameters are present, then decodes raw into dst. Empty raw is an
// empty object.
func decodeArgs(raw json.RawMessage, params []Param, dst any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte("{}")
	}
	var present map[string]json.RawMessage
	if err := json.Unmarshal(raw, &present); err != nil {
		return fmt.Errorf("arguments must be a JSON object: %w", domain.ErrInvalidInput)
	}
	for _, p := range params {
		if v, ok := present[p.Name]; p.Required && (!ok || string(v) == "null") {
			return fmt.Errorf("missing argument %q: %w", p.Name, domain.ErrInvalidInput)
		}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		if domain.Kind(err) == "invalid_input" {
			return err
		}
		return fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}
	return nil
}
