package config

import (
	"fmt"

	"github.com/dmitrijs2005/memorylane/internal/flagx"
	"github.com/dmitrijs2005/memorylane/internal/timex"
)

type FileConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr" toml:"server_endpoint_addr"`
	DatabasePath        string         `json:"database_path" toml:"database_path"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" toml:"online_check_interval"`
	UploadConcurrency   *int           `json:"upload_concurrency" toml:"upload_concurrency"`
	PickerQuality       *float64       `json:"picker_quality" toml:"picker_quality"`
	UploadOrder         string         `json:"upload_order" toml:"upload_order"`
	LogLevel            string         `json:"log_level" toml:"log_level"`
}

// parseFile overlays values from the file named by -c / -config. A bad file panics.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	c := &FileConfig{}
	if err := flagx.DecodeFile(path, c); err != nil {
		panic(err)
	}

	if c.ServerEndpointAddr != "" {
		config.ServerEndpointAddr = c.ServerEndpointAddr
	}
	if c.DatabasePath != "" {
		config.DatabasePath = c.DatabasePath
	}
	if c.OnlineCheckInterval.Duration > 0 {
		config.OnlineCheckInterval = c.OnlineCheckInterval.Duration
	}
	if c.UploadConcurrency != nil {
		config.UploadConcurrency = *c.UploadConcurrency
	}
	if c.PickerQuality != nil {
		config.PickerQuality = *c.PickerQuality
	}
	if c.UploadOrder != "" {
		if !validUploadOrder(c.UploadOrder) {
			panic(fmt.Sprintf("upload_order %q must be %q or %q", c.UploadOrder, OrderCover, OrderPick))
		}
		config.UploadOrder = c.UploadOrder
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}
