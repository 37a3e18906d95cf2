package timezone

import (
	"errors"
	"time"
)

const DefaultTimezone = "America/New_York"

const DayLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid_date")

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Clock pins "now" and calendar arithmetic to the business timezone.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func NewClock(tz string) *Clock {
	return &Clock{loc: Location(tz), now: time.Now}
}

// FixedClock always reports t. Used by tests and batch replays.
func FixedClock(t time.Time, loc *time.Location) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{loc: loc, now: func() time.Time { return t }}
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

func (c *Clock) Today() string {
	return c.Now().Format(DayLayout)
}

func (c *Clock) Tomorrow() string {
	return c.Now().AddDate(0, 0, 1).Format(DayLayout)
}

// ParseInstant accepts a calendar day (YYYY-MM-DD, read as local midnight)
// or a full RFC3339 timestamp.
func (c *Clock) ParseInstant(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(DayLayout, s, c.loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(c.loc), nil
	}
	return time.Time{}, ErrInvalidDate
}

// ParseDay normalises s to the calendar day it falls on.
func (c *Clock) ParseDay(s string) (string, error) {
	t, err := c.ParseInstant(s)
	if err != nil {
		return "", err
	}
	return t.Format(DayLayout), nil
}

// StartOfDay returns local midnight of a YYYY-MM-DD day.
func (c *Clock) StartOfDay(day string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, day, c.loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
