package config

import (
	"os"
	"path/filepath"
	"time"
)

// S3 describes the optional bucket used by the export command. It is only
// read from the JSON file so that credentials stay off the command line.
type S3 struct {
	Endpoint        string
	Region          string
	Bucket          string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
}

// Config holds runtime settings for the daylog client.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - DatabasePath: SQLite file holding local records and the intent queue.
//   - LogDir: directory for the rotated log file.
//   - Debug: mirror the log to stderr at debug level.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	DatabasePath        string
	LogDir              string
	Debug               bool
	S3                  S3
}

// dataDir is where the client keeps its files unless told otherwise.
func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".daylog"
	}
	return filepath.Join(home, ".daylog")
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DatabasePath = filepath.Join(dataDir(), "daylog.db")
	c.LogDir = filepath.Join(dataDir(), "logs")
	c.Debug = false
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
