package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/daylog/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Only the flags listed in the package doc are picked out of os.Args, using
// flagx.Filter, so -c/-config and anything else is left alone.
func parseFlags(cfg *Config) {
	args := flagx.Filter(os.Args[1:], flagx.Owned{
		Value: []string{"-a", "-i", "-d", "-l"},
		Bool:  []string{"-debug"},
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database file")
	fs.StringVar(&cfg.LogDir, "l", cfg.LogDir, "log directory")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
