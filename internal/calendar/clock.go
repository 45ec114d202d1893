package calendar

import (
	"time"

	"cloud.google.com/go/civil"
)

// Clock yields the current calendar date.
type Clock interface {
	Today() civil.Date
}

// ZoneClock reads the wall clock in a single configured zone.
type ZoneClock struct {
	loc *time.Location
	now func() time.Time
}

func NewZoneClock(loc *time.Location) *ZoneClock {
	if loc == nil {
		loc = time.UTC
	}
	return &ZoneClock{loc: loc, now: time.Now}
}

func (c *ZoneClock) Today() civil.Date {
	return civil.DateOf(c.now().In(c.loc))
}

// FixedClock always returns the same date.
type FixedClock civil.Date

func (c FixedClock) Today() civil.Date {
	return civil.Date(c)
}
