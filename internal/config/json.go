package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/clipvault/internal/flagx"
	"github.com/dmitrijs2005/clipvault/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the poll interval can be written either as a string
// like "500ms" or as integer nanoseconds.
type JsonConfig struct {
	DatabasePath string         `json:"database_path"`
	PeerAddr     string         `json:"peer_addr"`
	ListenAddr   string         `json:"listen_addr"`
	PollInterval timex.Duration `json:"poll_interval"`
	MaxEntries   *int           `json:"max_entries"`
}

// parseJson overlays cfg with values from the JSON file named by the
// -c/-config flag. Absent file path means no JSON is loaded. Only fields
// present in the file override defaults; MaxEntries uses a pointer so an
// explicit 0 (pruning off) is distinguishable from "not set".
//
// Read or unmarshal errors panic: a config file that exists but cannot be
// used is a setup mistake the user has to fix, not something to run past.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.PeerAddr != "" {
		cfg.PeerAddr = jc.PeerAddr
	}
	if jc.ListenAddr != "" {
		cfg.ListenAddr = jc.ListenAddr
	}
	if jc.PollInterval.Duration != 0 {
		cfg.PollInterval = jc.PollInterval.Duration
	}
	if jc.MaxEntries != nil {
		cfg.MaxEntries = *jc.MaxEntries
	}
}
