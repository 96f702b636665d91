package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected func() *Config
	}{
		{
			name: "all flags",
			args: []string{"-a", "http://api:8080", "-k", "pw", "-t", "10", "-cc", "+1",
				"-d", "ledger.db", "-s", "/tmp/stage", "-l", "debug", "-lb", "zap"},
			expected: func() *Config {
				c := defaults()
				c.APIBaseURL = "http://api:8080"
				c.AdminPassword = "pw"
				c.RequestTimeout = 10 * time.Second
				c.CountryCode = "+1"
				c.DatabasePath = "ledger.db"
				c.StagingDir = "/tmp/stage"
				c.LogLevel = "debug"
				c.LogBackend = "zap"
				return c
			},
		},
		{
			name: "unknown flags are ignored",
			args: []string{"-c", "cfg.json", "-x", "1", "-cc=+33"},
			expected: func() *Config {
				c := defaults()
				c.CountryCode = "+33"
				return c
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			require.NoError(t, parseFlags(cfg, tt.args))
			assert.Empty(t, cmp.Diff(tt.expected(), cfg))
		})
	}
}
