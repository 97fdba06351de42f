// Package config loads runtime settings for the erpcli client from
// defaults, environment variables, an optional JSON file, and command-line
// flags, in that order of precedence.
package config
