package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		env     map[string]string
		check   func(t *testing.T, cfg Config)
		wantErr string
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			check: func(t *testing.T, cfg Config) {
				require.Equal(t, Defaults(), cfg)
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"PORT":                   "9090",
				"MIN_BID_INCREMENT":      "25",
				"LOCK_TIMEOUT":           "500ms",
				"ALLOW_EARLY_ACCEPTANCE": "false",
				"HEARTBEAT_MISSED_LIMIT": "5",
			},
			check: func(t *testing.T, cfg Config) {
				require.Equal(t, "9090", cfg.Port)
				require.Equal(t, int64(25), cfg.MinBidIncrement)
				require.Equal(t, 500*time.Millisecond, cfg.LockTimeout)
				require.False(t, cfg.AllowEarlyAcceptance)
				require.Equal(t, 5, cfg.HeartbeatMissedLimit)
			},
		},
		{name: "zero_increment_allows_ties", env: map[string]string{"MIN_BID_INCREMENT": "0"}, wantErr: "MIN_BID_INCREMENT must be at least 1"},
		{name: "bad_duration", env: map[string]string{"SWEEP_INTERVAL": "soon"}, wantErr: "SWEEP_INTERVAL"},
		{name: "negative_duration", env: map[string]string{"LOCK_TIMEOUT": "-1s"}, wantErr: "LOCK_TIMEOUT must be positive"},
		{name: "bad_bool", env: map[string]string{"DEV_LOGIN": "maybe"}, wantErr: "DEV_LOGIN"},
		{name: "bad_int", env: map[string]string{"SUBSCRIBER_BUFFER": "lots"}, wantErr: "SUBSCRIBER_BUFFER"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := FromLookup(lookupFrom(tc.env))
			if tc.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("ENDING_SOON_WINDOW=15m\n"), 0o600))

	t.Setenv("ENDING_SOON_WINDOW", "")
	require.NoError(t, os.Unsetenv("ENDING_SOON_WINDOW"))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 15*time.Minute, cfg.EndingSoonWindow)

	_, err = Load(filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
}
