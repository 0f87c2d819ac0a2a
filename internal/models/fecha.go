package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	fechaLayout = "2006-01-02"
	horaLayout  = "15:04:05"
)

// Fecha is a calendar date without time of day or zone, stored in a DATE
// column and serialized as "YYYY-MM-DD".
type Fecha struct {
	t time.Time // always midnight UTC
}

// NewFecha builds a date from its components.
func NewFecha(year int, month time.Month, day int) Fecha {
	return Fecha{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FechaOf returns the calendar date of t as seen in t's own location.
func FechaOf(t time.Time) Fecha {
	y, m, d := t.Date()
	return NewFecha(y, m, d)
}

// ParseFecha parses a "YYYY-MM-DD" string.
func ParseFecha(s string) (Fecha, error) {
	t, err := time.Parse(fechaLayout, strings.TrimSpace(s))
	if err != nil {
		return Fecha{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return Fecha{t: t}, nil
}

func (f Fecha) IsZero() bool            { return f.t.IsZero() }
func (f Fecha) Weekday() time.Weekday   { return f.t.Weekday() }
func (f Fecha) Before(other Fecha) bool { return f.t.Before(other.t) }
func (f Fecha) Equal(other Fecha) bool  { return f.t.Equal(other.t) }
func (f Fecha) AddDays(days int) Fecha  { return Fecha{t: f.t.AddDate(0, 0, days)} }
func (f Fecha) String() string          { return f.t.Format(fechaLayout) }
func (f Fecha) MarshalJSON() ([]byte, error) {
	if f.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(f.String())
}

func (f *Fecha) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Fecha{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseFecha(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Scan accepts what the MySQL driver produces for DATE columns: time.Time
// with parseTime=true, raw bytes otherwise.
func (f *Fecha) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*f = Fecha{}
		return nil
	case time.Time:
		*f = FechaOf(v)
		return nil
	case []byte:
		return f.scanString(string(v))
	case string:
		return f.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into Fecha", value)
	}
}

func (f *Fecha) scanString(s string) error {
	// DATETIME values may come through as "2006-01-02 15:04:05"
	if len(s) > len(fechaLayout) {
		s = s[:len(fechaLayout)]
	}
	parsed, err := ParseFecha(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f Fecha) Value() (driver.Value, error) {
	if f.IsZero() {
		return nil, nil
	}
	return f.String(), nil
}

// Hora is a time of day with second precision, stored in a TIME column.
type Hora struct {
	secs int // seconds since midnight
	set  bool
}

// NewHora builds a time of day. It does not validate ranges.
func NewHora(hour, minute, second int) Hora {
	return Hora{secs: hour*3600 + minute*60 + second, set: true}
}

// ParseHora accepts "HH:MM" and "HH:MM:SS".
func ParseHora(s string) (Hora, error) {
	s = strings.TrimSpace(s)
	layout := horaLayout
	if len(s) == len("15:04") {
		layout = "15:04"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return Hora{}, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return NewHora(t.Hour(), t.Minute(), t.Second()), nil
}

func (h Hora) IsZero() bool { return !h.set }

// SinceMidnight returns the offset of h from 00:00.
func (h Hora) SinceMidnight() time.Duration {
	return time.Duration(h.secs) * time.Second
}

func (h Hora) Hour() int   { return h.secs / 3600 }
func (h Hora) Minute() int { return (h.secs % 3600) / 60 }
func (h Hora) Second() int { return h.secs % 60 }

// String renders "HH:MM", adding seconds only when they are not zero.
func (h Hora) String() string {
	if h.Second() != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h.Hour(), h.Minute(), h.Second())
	}
	return fmt.Sprintf("%02d:%02d", h.Hour(), h.Minute())
}

func (h Hora) MarshalJSON() ([]byte, error) {
	if h.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(h.String())
}

func (h *Hora) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*h = Hora{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseHora(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

func (h *Hora) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*h = Hora{}
		return nil
	case []byte:
		return h.scanString(string(v))
	case string:
		return h.scanString(v)
	case time.Time:
		*h = NewHora(v.Hour(), v.Minute(), v.Second())
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Hora", value)
	}
}

func (h *Hora) scanString(s string) error {
	// TIME may carry fractional seconds: "09:30:00.000000"
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	parsed, err := ParseHora(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

func (h Hora) Value() (driver.Value, error) {
	if h.IsZero() {
		return nil, nil
	}
	return fmt.Sprintf("%02d:%02d:%02d", h.Hour(), h.Minute(), h.Second()), nil
}
