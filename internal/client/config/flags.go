package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/memorylane/internal/flagx"
)

func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-i", "-n", "-o", "-q", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerEndpointAddr, "a", config.ServerEndpointAddr, "address and port of the backend server")
	fs.StringVar(&config.DatabasePath, "f", config.DatabasePath, "local database file")
	onlineCheckInterval := fs.Int("i", int(config.OnlineCheckInterval.Seconds()), "online status check interval (in seconds)")
	fs.IntVar(&config.UploadConcurrency, "n", config.UploadConcurrency, "concurrent uploads per save, 0 for unlimited")
	fs.StringVar(&config.UploadOrder, "o", config.UploadOrder, "upload order: cover (chosen cover first) or pick (pick order)")
	fs.Float64Var(&config.PickerQuality, "q", config.PickerQuality, "picker quality hint between 0 and 1")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if config.PickerQuality < 0 || config.PickerQuality > 1 {
		panic(fmt.Sprintf("picker quality %v out of range [0, 1]", config.PickerQuality))
	}

	if !validUploadOrder(config.UploadOrder) {
		panic(fmt.Sprintf("upload order %q must be %q or %q", config.UploadOrder, OrderCover, OrderPick))
	}

	config.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
