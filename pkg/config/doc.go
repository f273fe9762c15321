// Package config loads softsync configuration.
//
// Sources are layered lowest to highest: the embedded defaults, a user file
// (toml or yaml) and SOFTSYNC_* environment variables. Command line flags
// are applied on top by the CLI.
package config
