package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/daylog/internal/flagx"
	"github.com/dmitrijs2005/daylog/internal/timex"
)

// JsonS3 is the "s3" block of the JSON file.
type JsonS3 struct {
	Endpoint        string `json:"endpoint"`
	Region          string `json:"region"`
	Bucket          string `json:"bucket"`
	Prefix          string `json:"prefix"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
}

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer and
// zero-valued fields tell "absent" apart from explicit values.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	DatabasePath        string         `json:"database_path"`
	LogDir              string         `json:"log_dir"`
	Debug               *bool          `json:"debug"`
	S3                  *JsonS3        `json:"s3"`
}

// parseJson overlays Config with values loaded from the file named by -c or
// -config. Keys missing from the file leave cfg untouched. Panics on read or
// unmarshal errors.
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

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.LogDir != "" {
		cfg.LogDir = jc.LogDir
	}
	if jc.Debug != nil {
		cfg.Debug = *jc.Debug
	}
	if jc.S3 != nil {
		cfg.S3 = S3(*jc.S3)
	}
}
