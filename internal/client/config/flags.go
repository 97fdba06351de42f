package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmravi/erpcli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   backend base URL (default from Config)
//	-s string   session database path
//	-i int      session validation interval in seconds
//
// The function filters os.Args to the flags it owns, via flagx.FilterArgs,
// so it does not clash with the -c/-config flags owned by the JSON loader.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "backend base URL")
	fs.StringVar(&cfg.SessionDBPath, "s", cfg.SessionDBPath, "session database path")
	validateInterval := fs.Int("i", int(cfg.ValidateInterval.Seconds()), "session validation interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ValidateInterval = time.Duration(*validateInterval) * time.Second
}
