package config

import (
	"flag"
	"os"
	"time"

	"github.com/meherkandukuri/vegtrack/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend HTTP API (default from Config)
//	-d string   SQLite DSN of the local cache (default from Config)
//	-s int      suggestion debounce delay in milliseconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the backend HTTP API")
	fs.StringVar(&cfg.CacheDSN, "d", cfg.CacheDSN, "SQLite DSN of the local cache")
	suggestDelay := fs.Int("s", int(cfg.SuggestDelay.Milliseconds()), "suggestion debounce delay (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SuggestDelay = time.Duration(*suggestDelay) * time.Millisecond
}
