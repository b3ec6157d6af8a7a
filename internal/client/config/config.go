// Package config loads runtime configuration for the FileVault CLI.
//
// Sources & precedence: defaults, then an optional JSON file (-c/-config),
// then command-line flags.
package config

import (
	"os"
	"path/filepath"
)

// Config holds runtime settings for the FileVault CLI.
//
// Fields:
//   - ServerAddr: base URL of the backend HTTP endpoint.
//   - SessionFile: path of the file caching the session token and user.
//   - DownloadDir: directory downloaded files are written to.
type Config struct {
	ServerAddr  string
	SessionFile string
	DownloadDir string
}

// LoadDefaults populates c with sensible defaults. The session file lives
// under the user's home directory when one can be resolved, otherwise in
// the working directory.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://localhost:3001"
	c.SessionFile = ".filevault-session.json"
	c.DownloadDir = "."

	if home, err := os.UserHomeDir(); err == nil {
		c.SessionFile = filepath.Join(home, ".filevault-session.json")
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
