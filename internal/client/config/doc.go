// Package config loads runtime configuration for the Memory Lane CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or TOML file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-f string   path of the local SQLite database
//	-i int      online status check interval (seconds)
//	-n int      concurrent uploads per save (0 = unlimited)
//	-q float    picker quality hint in [0, 1]
//	-v string   log level
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	server_endpoint_addr = "127.0.0.1:50051"
//	database_path = "memorylane.db"
//	online_check_interval = "3s"
//	upload_concurrency = 4
//	picker_quality = 0.8
package config
