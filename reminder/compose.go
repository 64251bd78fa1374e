package reminder

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/locales/ru"
)

const (
	todayHeader    = "🔔 Напоминание!\nСегодня запланированы события:"
	tomorrowHeader = "📅 Завтра будет:"
	weekHeader     = "📅 План на неделю:"
)

var russian = ru.New()

// Message is a composed notification.
type Message struct {
	Header string
	Lines  []string
}

// String renders the message as sent: the header, an empty line, then one
// line per event.
func (m Message) String() string {
	var sb strings.Builder
	sb.WriteString(m.Header)
	sb.WriteString("\n")
	for _, line := range m.Lines {
		sb.WriteString("\n")
		sb.WriteString(line)
	}
	return sb.String()
}

// Compose renders the events of one bucket. Callers must not pass an empty
// event list.
func Compose(bucket Bucket, events []Event, r *MentionResolver, loc *time.Location) (Message, error) {
	msg := Message{Lines: make([]string, 0, len(events))}
	switch bucket {
	case Today:
		msg.Header = todayHeader
	case Tomorrow:
		msg.Header = tomorrowHeader
	case ThisWeek:
		msg.Header = weekHeader
	}

	for _, e := range events {
		mentions := r.Resolve(e.Title)
		if bucket == ThisWeek {
			d, err := e.date(loc)
			if err != nil {
				return Message{}, err
			}
			msg.Lines = append(msg.Lines, fmt.Sprintf("• %s: %s %s", dayLabel(d), e.Title, mentions))
			continue
		}
		msg.Lines = append(msg.Lines, fmt.Sprintf("• %s %s", e.Title, mentions))
	}
	return msg, nil
}

// dayLabel formats d as "понедельник, 3 июня". MonthWide is the genitive form.
func dayLabel(d time.Time) string {
	return fmt.Sprintf("%s, %d %s", russian.WeekdayWide(d.Weekday()), d.Day(), russian.MonthWide(d.Month()))
}
