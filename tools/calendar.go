package tools

import (
	"context"
	"fmt"
	"time"

	"remindbot/reminder"

	"github.com/golang/glog"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

type CalendarTool struct {
	service    *calendar.Service
	calendarID string
	maxResults int64
}

// NewCalendarTool creates a Calendar reader for calendarID. opts normally
// carries the authenticated HTTP client.
func NewCalendarTool(ctx context.Context, calendarID string, maxResults int64, opts ...option.ClientOption) (*CalendarTool, error) {
	srv, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %w", err)
	}

	return &CalendarTool{
		service:    srv,
		calendarID: calendarID,
		maxResults: maxResults,
	}, nil
}

// UpcomingEvents lists events starting at from, with recurring events
// expanded and deleted ones left out, in ascending start order.
func (c *CalendarTool) UpcomingEvents(ctx context.Context, from time.Time) ([]reminder.Event, error) {
	events, err := c.service.Events.List(c.calendarID).
		TimeMin(from.Format(time.RFC3339)).
		ShowDeleted(false).
		SingleEvents(true).
		MaxResults(c.maxResults).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to retrieve events: %v", ErrFetchFailure, err)
	}

	glog.Infof("Found %d calendar events since %s", len(events.Items), from.Format(time.RFC3339))
	if int64(len(events.Items)) >= c.maxResults {
		glog.Warningf("Calendar returned %d events, the fetch cap; later events were not seen", len(events.Items))
	}

	result := make([]reminder.Event, 0, len(events.Items))
	for _, item := range events.Items {
		evt, err := toEvent(item)
		if err != nil {
			return nil, err
		}
		glog.Infof("%s (%s)", evt.Title, startString(item))
		result = append(result, evt)
	}
	return result, nil
}

// toEvent converts a Calendar item. Items without a start are passed through
// with a zero start so classification rejects them.
func toEvent(item *calendar.Event) (reminder.Event, error) {
	evt := reminder.Event{Title: item.Summary}
	if item.Start == nil {
		return evt, nil
	}

	switch {
	case item.Start.DateTime != "":
		t, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return evt, fmt.Errorf("%w: %q has bad start time: %v", reminder.ErrInvalidEvent, item.Summary, err)
		}
		evt.Start = t
	case item.Start.Date != "":
		t, err := time.Parse("2006-01-02", item.Start.Date)
		if err != nil {
			return evt, fmt.Errorf("%w: %q has bad start date: %v", reminder.ErrInvalidEvent, item.Summary, err)
		}
		evt.Start = t
		evt.AllDay = true
	}
	return evt, nil
}

func startString(item *calendar.Event) string {
	if item.Start == nil {
		return ""
	}
	if item.Start.DateTime != "" {
		return item.Start.DateTime
	}
	return item.Start.Date
}
