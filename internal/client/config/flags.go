package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/filevault/internal/flagx"
)

// parseFlags populates Config fields from command-line flags:
//
//	-a string   server base URL (e.g., "http://localhost:3001")
//	-f string   session file path
//	-o string   download directory
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerAddr, "a", config.ServerAddr, "server base URL")
	fs.StringVar(&config.SessionFile, "f", config.SessionFile, "session file path")
	fs.StringVar(&config.DownloadDir, "o", config.DownloadDir, "download directory")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
