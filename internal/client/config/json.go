package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/filevault/internal/flagx"
)

type JsonConfig struct {
	ServerAddr  string `json:"server_addr"`
	SessionFile string `json:"session_file"`
	DownloadDir string `json:"download_dir"`
}

// parseJson loads configuration values from a JSON file named by -c/-config.
// Unset fields keep their current values.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ServerAddr != "" {
		config.ServerAddr = c.ServerAddr
	}
	if c.SessionFile != "" {
		config.SessionFile = c.SessionFile
	}
	if c.DownloadDir != "" {
		config.DownloadDir = c.DownloadDir
	}
}
