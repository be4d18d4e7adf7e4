package config

import "time"

// Config holds runtime settings for the Memory Lane CLI.
type Config struct {
	ServerEndpointAddr  string
	DatabasePath        string
	OnlineCheckInterval time.Duration
	UploadConcurrency   int
	PickerQuality       float64
	UploadOrder         string
	LogLevel            string
}

// Values of Config.UploadOrder; empty means OrderCover.
const (
	// OrderCover uploads the chosen cover first.
	OrderCover = "cover"
	// OrderPick keeps pick order and ignores the cover choice.
	OrderPick = "pick"
)

func validUploadOrder(s string) bool {
	return s == "" || s == OrderCover || s == OrderPick
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DatabasePath = "memorylane.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.UploadConcurrency = 4
	c.PickerQuality = 1
	c.UploadOrder = OrderCover
	c.LogLevel = "warn"
}

// LoadConfig applies defaults, then the config file (if any), then flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
