// Package config loads runtime configuration for the daylog client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-i int      online status check interval (seconds)
//	-d string   path of the local SQLite database
//	-l string   log directory
//	-debug      verbose logging, mirrored to stderr
//
// # JSON schema
//
// Intervals use timex.Duration, so they can be strings like "3s" or integer
// nanoseconds. Missing keys keep their defaults. The s3 block is only
// available here:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "database_path": "/home/me/.daylog/daylog.db",
//	  "log_dir": "/home/me/.daylog/logs",
//	  "debug": false,
//	  "s3": {
//	    "endpoint": "http://127.0.0.1:9000",
//	    "region": "us-east-1",
//	    "bucket": "daylog",
//	    "prefix": "exports/",
//	    "access_key_id": "...",
//	    "secret_access_key": "..."
//	  }
//	}
package config
