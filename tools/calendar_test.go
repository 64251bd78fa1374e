package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"remindbot/reminder"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

func newTestCalendar(t *testing.T, handler http.HandlerFunc) *CalendarTool {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tool, err := NewCalendarTool(context.Background(), "team@group.calendar.google.com", 250,
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)
	return tool
}

func TestCalendarToolUpcomingEvents(t *testing.T) {
	from := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	tool := newTestCalendar(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Contains(t, r.URL.Path, "/calendars/team@group.calendar.google.com/events")
		require.Equal(t, "2024-06-03T09:00:00Z", q.Get("timeMin"))
		require.Equal(t, "false", q.Get("showDeleted"))
		require.Equal(t, "true", q.Get("singleEvents"))
		require.Equal(t, "250", q.Get("maxResults"))
		require.Equal(t, "startTime", q.Get("orderBy"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[
			{"summary":"Тари sync","start":{"dateTime":"2024-06-03T12:00:00+03:00"}},
			{"summary":"Planning","start":{"date":"2024-06-07"}}
		]}`))
	})

	events, err := tool.UpcomingEvents(context.Background(), from)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "Тари sync", events[0].Title)
	require.False(t, events[0].AllDay)
	require.True(t, events[0].Start.Equal(time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)))
	require.True(t, events[1].AllDay)
	require.Equal(t, time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC), events[1].Start)
}

func TestCalendarToolFetchFailure(t *testing.T) {
	tool := newTestCalendar(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":503,"message":"backend error"}}`, http.StatusServiceUnavailable)
	})

	_, err := tool.UpcomingEvents(context.Background(), time.Now())
	require.ErrorIs(t, err, ErrFetchFailure)
}

func TestToEvent(t *testing.T) {
	evt, err := toEvent(&calendar.Event{Summary: "no start"})
	require.NoError(t, err)
	require.True(t, evt.Start.IsZero())

	evt, err = toEvent(&calendar.Event{Summary: "empty start", Start: &calendar.EventDateTime{}})
	require.NoError(t, err)
	require.True(t, evt.Start.IsZero())

	_, err = toEvent(&calendar.Event{Summary: "garbage", Start: &calendar.EventDateTime{Date: "June 7"}})
	require.ErrorIs(t, err, reminder.ErrInvalidEvent)
}
