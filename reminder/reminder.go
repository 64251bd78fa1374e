package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"
)

// EventSource lists upcoming calendar events starting at from, in ascending
// start order.
type EventSource interface {
	UpcomingEvents(ctx context.Context, from time.Time) ([]Event, error)
}

// Dispatcher delivers a composed message to the chat. DispatchWithImage
// attaches the image at imageURL, or a random one when imageURL is empty,
// and falls back to plain text when the image cannot be attached.
type Dispatcher interface {
	Dispatch(ctx context.Context, text string) error
	DispatchWithImage(ctx context.Context, text, imageURL string) error
}

// Reminder runs one fetch, classify and notify pass.
type Reminder struct {
	source   EventSource
	notifier Dispatcher
	mentions *MentionResolver
	loc      *time.Location
}

func New(source EventSource, notifier Dispatcher, mentions *MentionResolver, loc *time.Location) *Reminder {
	return &Reminder{
		source:   source,
		notifier: notifier,
		mentions: mentions,
		loc:      loc,
	}
}

// Run notifies about events relative to now. The weekly plan is only sent on
// Mondays. A failed fetch or an invalid event stops the run before anything
// is sent; a failed send is logged and the remaining buckets still go out.
func (r *Reminder) Run(ctx context.Context, now time.Time) error {
	events, err := r.source.UpcomingEvents(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to get calendar events: %w", err)
	}
	if len(events) == 0 {
		glog.Infof("No upcoming events found")
		return nil
	}

	buckets, err := Classify(events, now, r.loc)
	if err != nil {
		return fmt.Errorf("failed to classify events: %w", err)
	}
	glog.Infof("Classified %d events: %d today, %d tomorrow, %d this week",
		len(events), len(buckets.Today), len(buckets.Tomorrow), len(buckets.ThisWeek))

	pending := []Bucket{Today, Tomorrow}
	if now.In(r.loc).Weekday() == time.Monday {
		pending = append(pending, ThisWeek)
	} else if len(buckets.ThisWeek) > 0 {
		glog.V(1).Infof("Skipping weekly plan: not Monday")
	}

	for _, bucket := range pending {
		evts := buckets.Events(bucket)
		if len(evts) == 0 {
			continue
		}
		msg, err := Compose(bucket, evts, r.mentions, r.loc)
		if err != nil {
			return fmt.Errorf("failed to compose %s reminder: %w", bucket, err)
		}
		if err := r.notifier.DispatchWithImage(ctx, msg.String(), ""); err != nil {
			glog.Errorf("Failed to send %s reminder: %v", bucket, err)
			continue
		}
		glog.Infof("Sent %s reminder with %d events", bucket, len(evts))
	}
	return nil
}
