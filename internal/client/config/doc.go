// Package config loads runtime configuration for the fittrack CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed FITTRACK_, after loading a dotenv file
//     (-env path, or ./.env when present) with godotenv.
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the remote store
//	-k string   project API key
//	-d string   local SQLite database path
//	-t int      request timeout (seconds)
//	-m string   metrics listen address
//	-l string   log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "15s" or integer nanoseconds. Only keys present override:
//
//	{
//	  "remote_store_addr": "127.0.0.1:50051",
//	  "api_key": "anon-key",
//	  "request_timeout": "15s",
//	  "s3_endpoint": "http://127.0.0.1:9000"
//	}
package config
