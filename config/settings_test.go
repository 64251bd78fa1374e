package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validSettings() Settings {
	s := DefaultSettings()
	s.Timezone = "UTC"
	s.AccessToken = "token"
	return s
}

func TestSettingsValidate(t *testing.T) {
	s := validSettings()
	require.NoError(t, s.Validate())

	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"no calendar", func(s *Settings) { s.CalendarID = "" }},
		{"no timezone", func(s *Settings) { s.Timezone = "" }},
		{"unknown timezone", func(s *Settings) { s.Timezone = "Mars/Olympus_Mons" }},
		{"zero cap", func(s *Settings) { s.MaxResults = 0 }},
		{"zero timeout", func(s *Settings) { s.Timeout = 0 }},
		{"no token", func(s *Settings) { s.AccessToken = "" }},
		{"no peer", func(s *Settings) { s.PeerID = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validSettings()
			tc.modify(&s)
			require.Error(t, s.Validate())
		})
	}
}

func TestSettingsDryRunNeedsNoToken(t *testing.T) {
	s := validSettings()
	s.AccessToken = ""
	s.DryRun = true
	require.NoError(t, s.Validate())
}

func TestSettingsLoadSecrets(t *testing.T) {
	t.Setenv(AccessTokenEnv, "vk1.secret")
	s := DefaultSettings()
	s.LoadSecrets()
	require.Equal(t, "vk1.secret", s.AccessToken)
}
