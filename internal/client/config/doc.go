// Package config loads runtime configuration for the fuel terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config (or $FUEL_CONFIG).
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-i int      online status check interval (seconds)
//	-w int      profile save debounce (milliseconds)
//	-d string   local SQLite database path
//	-l string   log level
//
// # JSON schema
//
// Durations accept strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "save_debounce": "1s",
//	  "save_timeout": "10s",
//	  "database_dsn": "fuel.db",
//	  "log_level": "warn"
//	}
package config
