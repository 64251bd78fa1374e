package reminder

import "time"

// Bucket names one of the reminder groupings.
type Bucket int

const (
	Today Bucket = iota
	Tomorrow
	ThisWeek
)

func (b Bucket) String() string {
	switch b {
	case Today:
		return "today"
	case Tomorrow:
		return "tomorrow"
	case ThisWeek:
		return "this week"
	default:
		return "unknown"
	}
}

// Buckets holds the result of one classification pass. An event may appear
// in ThisWeek and in one of Today or Tomorrow at the same time.
type Buckets struct {
	Today    []Event
	Tomorrow []Event
	ThisWeek []Event
}

// Events returns the members of bucket.
func (b Buckets) Events(bucket Bucket) []Event {
	switch bucket {
	case Today:
		return b.Today
	case Tomorrow:
		return b.Tomorrow
	case ThisWeek:
		return b.ThisWeek
	}
	return nil
}

// Classify groups events by calendar date relative to now in loc. The week
// window is the seven days starting today, inclusive. Input order is kept.
func Classify(events []Event, now time.Time, loc *time.Location) (Buckets, error) {
	today := civilDate(now.In(loc))
	tomorrow := today.AddDate(0, 0, 1)
	weekEnd := today.AddDate(0, 0, 6)

	var b Buckets
	for _, e := range events {
		d, err := e.date(loc)
		if err != nil {
			return Buckets{}, err
		}

		switch {
		case d.Equal(today):
			b.Today = append(b.Today, e)
		case d.Equal(tomorrow):
			b.Tomorrow = append(b.Tomorrow, e)
		}
		if !d.Before(today) && !d.After(weekEnd) {
			b.ThisWeek = append(b.ThisWeek, e)
		}
	}
	return b, nil
}
