// Package calendar classifies calendar dates into business days and weeks.
//
// All functions operate on civil.Date values so that a date is never shifted
// through a timezone offset on its way to a weekday.
package calendar

import (
	"time"

	"cloud.google.com/go/civil"
)

// Weekday returns the day of week of d.
func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

// IsBusinessDay reports whether d falls on Monday through Friday.
func IsBusinessDay(d civil.Date) bool {
	wd := Weekday(d)
	return wd >= time.Monday && wd <= time.Friday
}

// PreviousBusinessDay returns the closest business day strictly before d.
func PreviousBusinessDay(d civil.Date) civil.Date {
	prev := d.AddDays(-1)
	for !IsBusinessDay(prev) {
		prev = prev.AddDays(-1)
	}
	return prev
}

// MondayOfWeekContaining returns the Monday that starts the business week d
// belongs to. Saturday maps back to its own week's Monday while Sunday maps
// forward to the following Monday.
func MondayOfWeekContaining(d civil.Date) civil.Date {
	wd := int(Weekday(d))
	offset := 1 - wd
	if wd == int(time.Sunday) {
		offset = 1
	}
	return d.AddDays(offset)
}

// DayName returns the English name of d's weekday.
func DayName(d civil.Date) string {
	return Weekday(d).String()
}

