package service

import (
	"time"

	"vet-appointments/internal/models"
)

// Clinic hours: opening inclusive, closing exclusive.
const (
	OpeningTime = 8 * time.Hour
	ClosingTime = 17 * time.Hour
)

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(f models.Fecha) bool {
	wd := f.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// NextWeekday returns f when it is a weekday, otherwise the following Monday.
func NextWeekday(f models.Fecha) models.Fecha {
	for IsWeekend(f) {
		f = f.AddDays(1)
	}
	return f
}

// WithinBusinessHours reports whether h lies in [08:00, 17:00).
func WithinBusinessHours(h models.Hora) bool {
	d := h.SinceMidnight()
	return d >= OpeningTime && d < ClosingTime
}
