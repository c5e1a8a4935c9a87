package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/clipvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string    path to the SQLite store (default per-user location)
//	-peer string base URL of a peer store; empty uses the local store
//	-interval int clipboard poll interval in milliseconds
//	-max int     history bound; 0 disables pruning
//
// Only these flags are parsed; subcommand flags are filtered out with
// flagx.FilterArgs so the two layers never interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-peer", "-interval", "-max"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the clipboard store database")
	fs.StringVar(&cfg.PeerAddr, "peer", cfg.PeerAddr, "base URL of a peer store (empty for local)")
	pollInterval := fs.Int("interval", int(cfg.PollInterval.Milliseconds()), "clipboard poll interval (in milliseconds)")
	fs.IntVar(&cfg.MaxEntries, "max", cfg.MaxEntries, "maximum history entries (0 disables pruning)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.PollInterval = time.Duration(*pollInterval) * time.Millisecond
}
