package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var msk = time.FixedZone("MSK", 3*60*60)

func allDay(title string, y int, m time.Month, d int) Event {
	return Event{Title: title, Start: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), AllDay: true}
}

func titles(events []Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Title)
	}
	return out
}

func TestClassifyMondayScenario(t *testing.T) {
	now := time.Date(2024, 6, 3, 9, 0, 0, 0, msk)
	events := []Event{
		allDay("Тари sync", 2024, 6, 3),
		allDay("Бас review", 2024, 6, 4),
		allDay("Planning", 2024, 6, 7),
	}

	b, err := Classify(events, now, msk)
	require.NoError(t, err)
	require.Equal(t, []string{"Тари sync"}, titles(b.Today))
	require.Equal(t, []string{"Бас review"}, titles(b.Tomorrow))
	require.Equal(t, []string{"Тари sync", "Бас review", "Planning"}, titles(b.ThisWeek))
}

func TestClassifyWeekWindowIsSevenDays(t *testing.T) {
	// Thursday, to show the window does not follow ISO weeks.
	now := time.Date(2024, 6, 6, 12, 0, 0, 0, msk)
	var events []Event
	for d := 5; d <= 14; d++ {
		events = append(events, allDay(time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC).Format("01-02"), 2024, 6, d))
	}

	b, err := Classify(events, now, msk)
	require.NoError(t, err)
	require.Equal(t, []string{"06-06", "06-07", "06-08", "06-09", "06-10", "06-11", "06-12"}, titles(b.ThisWeek))
	require.Equal(t, []string{"06-06"}, titles(b.Today))
	require.Equal(t, []string{"06-07"}, titles(b.Tomorrow))
}

func TestClassifyUsesConfiguredTimezone(t *testing.T) {
	now := time.Date(2024, 6, 3, 9, 0, 0, 0, msk)
	tests := []struct {
		name     string
		start    time.Time
		today    bool
		tomorrow bool
	}{
		{"late evening utc is tomorrow in msk", time.Date(2024, 6, 3, 22, 30, 0, 0, time.UTC), false, true},
		{"early morning msk is today", time.Date(2024, 6, 2, 21, 30, 0, 0, time.UTC), true, false},
		{"same zone afternoon", time.Date(2024, 6, 3, 15, 0, 0, 0, msk), true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := Classify([]Event{{Title: "x", Start: tc.start}}, now, msk)
			require.NoError(t, err)
			require.Equal(t, tc.today, len(b.Today) == 1)
			require.Equal(t, tc.tomorrow, len(b.Tomorrow) == 1)
			require.Len(t, b.ThisWeek, 1)
		})
	}
}

func TestClassifyAllDayDateIsNotShifted(t *testing.T) {
	// The reference instant is already June 4 in UTC+14.
	far := time.FixedZone("LINT", 14*60*60)
	now := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)

	b, err := Classify([]Event{allDay("holiday", 2024, 6, 4)}, now, far)
	require.NoError(t, err)
	require.Len(t, b.Today, 1)
	require.Empty(t, b.Tomorrow)
}

func TestClassifyExcludesPastDays(t *testing.T) {
	now := time.Date(2024, 6, 3, 9, 0, 0, 0, msk)
	b, err := Classify([]Event{allDay("yesterday", 2024, 6, 2)}, now, msk)
	require.NoError(t, err)
	require.Empty(t, b.Today)
	require.Empty(t, b.Tomorrow)
	require.Empty(t, b.ThisWeek)
}

func TestClassifyRejectsEventWithoutDate(t *testing.T) {
	now := time.Date(2024, 6, 3, 9, 0, 0, 0, msk)
	events := []Event{allDay("ok", 2024, 6, 3), {Title: "broken"}}

	b, err := Classify(events, now, msk)
	require.ErrorIs(t, err, ErrInvalidEvent)
	require.Contains(t, err.Error(), "broken")
	require.Empty(t, b.Today)
}
