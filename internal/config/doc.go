// Package config loads the board server configuration from environment
// variables, command-line flags, and an optional JSON file, merging the
// sources into one StructuredConfig.
package config
