package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"
	_ "time/tzdata"

	"remindbot/auth"
	"remindbot/config"
	"remindbot/reminder"
	"remindbot/tools"

	"github.com/golang/glog"
	"google.golang.org/api/option"
)

func parseFlags() (config.Settings, string) {
	s := config.DefaultSettings()

	flag.StringVar(&s.CalendarID, "calendar", s.CalendarID, "Google Calendar ID to read events from")
	flag.Int64Var(&s.PeerID, "peer", s.PeerID, "VK peer ID to post reminders to")
	flag.StringVar(&s.Timezone, "tz", s.Timezone, "IANA timezone used to decide what is today")
	flag.StringVar(&s.MentionsFile, "mentions", "", "JSON file with name to handle mentions (built-in table if empty)")
	flag.StringVar(&s.CredentialsFile, "credentials", s.CredentialsFile, "Google OAuth client secret or service account key")
	flag.StringVar(&s.TokenFile, "token", s.TokenFile, "Cached Google OAuth token")
	flag.Int64Var(&s.MaxResults, "max-results", s.MaxResults, "Maximum number of events to fetch")
	flag.DurationVar(&s.Timeout, "timeout", s.Timeout, "Timeout for each HTTP call")
	flag.BoolVar(&s.DryRun, "dry-run", false, "Print reminders instead of sending them")
	now := flag.String("now", "", "Reference time in RFC 3339 (defaults to the current time)")
	flag.Parse()

	s.LoadSecrets()
	return s, *now
}

// run wires the reminder from settings and runs it once. Every failure is
// returned so main can log it without a non-zero exit.
func run(ctx context.Context, settings config.Settings, loc *time.Location, now time.Time) error {
	mentions, err := config.LoadMentions(settings.MentionsFile)
	if err != nil {
		return fmt.Errorf("failed to load mentions: %w", err)
	}

	googleClient, err := auth.GetClient(ctx, settings.CredentialsFile, settings.TokenFile)
	if err != nil {
		return fmt.Errorf("unable to get OAuth client: %w", err)
	}
	googleClient.Timeout = settings.Timeout

	calendarTool, err := tools.NewCalendarTool(ctx, settings.CalendarID, settings.MaxResults, option.WithHTTPClient(googleClient))
	if err != nil {
		return fmt.Errorf("failed to initialize calendar: %w", err)
	}

	var notifier reminder.Dispatcher
	if settings.DryRun {
		notifier = tools.NewConsoleNotifier(os.Stdout)
	} else {
		httpClient := &http.Client{Timeout: settings.Timeout}
		notifier = tools.NewNotifier(
			tools.NewVKClient(settings.AccessToken, httpClient),
			tools.NewCatAPI(httpClient),
			settings.PeerID,
		)
	}

	glog.Infof("Running reminder for %s (calendar %s, peer %d, tz %s, dry run %t)",
		now.In(loc).Format(time.RFC3339), settings.CalendarID, settings.PeerID, settings.Timezone, settings.DryRun)

	r := reminder.New(calendarTool, notifier, reminder.NewMentionResolver(mentions), loc)
	return r.Run(ctx, now)
}

func main() {
	defer glog.Flush()
	defer func() {
		if r := recover(); r != nil {
			glog.Errorf("Reminder run panicked: %v", r)
		}
	}()

	settings, nowFlag := parseFlags()
	if err := settings.Validate(); err != nil {
		glog.Exitf("Invalid settings: %v", err)
	}
	loc, err := settings.Location()
	if err != nil {
		glog.Exitf("Invalid settings: %v", err)
	}

	now := time.Now()
	if nowFlag != "" {
		now, err = time.Parse(time.RFC3339, nowFlag)
		if err != nil {
			glog.Exitf("Invalid -now value %q: %v", nowFlag, err)
		}
	}

	if err := run(context.Background(), settings, loc, now); err != nil {
		glog.Errorf("Reminder run failed: %v", err)
		return
	}
	glog.Infof("Reminder run finished")
}
