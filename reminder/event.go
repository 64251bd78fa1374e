package reminder

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidEvent is returned when an event carries no usable start date.
var ErrInvalidEvent = errors.New("invalid event")

// Event is a single calendar entry as seen by the reminder.
type Event struct {
	Title string
	// Start is the event start. For all-day events only the year, month and
	// day are meaningful.
	Start  time.Time
	AllDay bool
}

// date returns the calendar date of the event as midnight UTC. Timed events
// are converted to loc first; all-day dates are taken as-is.
func (e Event) date(loc *time.Location) (time.Time, error) {
	if e.Start.IsZero() {
		return time.Time{}, fmt.Errorf("%w: %q has no start date", ErrInvalidEvent, e.Title)
	}
	t := e.Start
	if !e.AllDay {
		t = t.In(loc)
	}
	return civilDate(t), nil
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
