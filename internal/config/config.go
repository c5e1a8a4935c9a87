// Package config assembles runtime settings from defaults, an optional
// JSON file and command-line flags, in that order of precedence.
package config

import (
	"time"

	"github.com/dmitrijs2005/clipvault/internal/store"
)

// Config holds runtime settings for the clipvault CLI.
//
// Fields:
//   - DatabasePath: location of the SQLite store.
//   - PeerAddr: base URL of a peer store ("http://host:2573"); empty means
//     the local store is used.
//   - ListenAddr: address the serve command binds to.
//   - PollInterval: how often the watcher samples the system clipboard.
//   - MaxEntries: history bound enforced after each insert; 0 disables
//     pruning.
type Config struct {
	DatabasePath string
	PeerAddr     string
	ListenAddr   string
	PollInterval time.Duration
	MaxEntries   int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	path, err := store.DefaultPath()
	if err != nil {
		path = "clipvault.db"
	}
	c.DatabasePath = path
	c.PeerAddr = ""
	c.ListenAddr = ":2573"
	c.PollInterval = 500 * time.Millisecond
	c.MaxEntries = 100
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a -c/-config file is given) and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
