package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	DefaultCalendarID = "fff294e6c8e16f7ab80322a14ac614b849423a1877d7bd27b7e32167b9350d02@group.calendar.google.com"
	DefaultPeerID     = 2000000001
	DefaultTimezone   = "Europe/Moscow"
	// DefaultMaxResults bounds the calendar fetch. A week of this calendar is
	// a handful of events; the cap only guards against runaway feeds.
	DefaultMaxResults = 250
	DefaultTimeout    = 15 * time.Second

	// AccessTokenEnv names the environment variable holding the VK token.
	AccessTokenEnv = "VK_ACCESS_TOKEN"
)

// Settings is the deployment configuration of one run.
type Settings struct {
	CalendarID      string
	PeerID          int64
	Timezone        string
	MentionsFile    string
	CredentialsFile string
	TokenFile       string
	MaxResults      int64
	Timeout         time.Duration
	DryRun          bool

	// AccessToken is the VK community or user token. Never logged.
	AccessToken string
}

// DefaultSettings returns settings with every optional field filled in.
func DefaultSettings() Settings {
	return Settings{
		CalendarID:      DefaultCalendarID,
		PeerID:          DefaultPeerID,
		Timezone:        DefaultTimezone,
		CredentialsFile: "oauth_credentials.json",
		TokenFile:       "token.json",
		MaxResults:      DefaultMaxResults,
		Timeout:         DefaultTimeout,
	}
}

// LoadSecrets fills secrets from the environment.
func (s *Settings) LoadSecrets() {
	s.AccessToken = os.Getenv(AccessTokenEnv)
}

// Validate reports the first problem with s.
func (s *Settings) Validate() error {
	if s.CalendarID == "" {
		return errors.New("calendar ID is required")
	}
	if _, err := s.Location(); err != nil {
		return err
	}
	if s.MaxResults <= 0 {
		return fmt.Errorf("max results must be positive, got %d", s.MaxResults)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", s.Timeout)
	}
	if s.DryRun {
		return nil
	}
	if s.AccessToken == "" {
		return fmt.Errorf("%s is not set", AccessTokenEnv)
	}
	if s.PeerID == 0 {
		return errors.New("peer ID is required")
	}
	return nil
}

// Location resolves the configured timezone used for date bucketing.
func (s *Settings) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return nil, errors.New("timezone is required")
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}
