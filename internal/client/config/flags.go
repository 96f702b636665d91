package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/rentadmin/internal/flagx"
)

var knownFlags = []string{"-a", "-k", "-t", "-cc", "-d", "-s", "-l", "-lb"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   API base URL
//	-k string   admin credential sent as x-admin-password
//	-t int      request timeout (seconds)
//	-cc string  phone country code
//	-d string   orphan ledger database path
//	-s string   staging directory
//	-l string   log level
//	-lb string  log backend (slog, slog-text, zap)
//
// Arguments are filtered with flagx.FilterArgs so that -c/-config and any
// unknown flags are ignored here.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.AdminPassword, "k", cfg.AdminPassword, "admin credential")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.CountryCode, "cc", cfg.CountryCode, "phone country code")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "orphan ledger database path")
	fs.StringVar(&cfg.StagingDir, "s", cfg.StagingDir, "staging directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogBackend, "lb", cfg.LogBackend, "log backend")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if *timeout <= 0 {
		return fmt.Errorf("parse flags: timeout must be positive, got %d", *timeout)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
