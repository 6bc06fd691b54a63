// Package config loads the application configuration: embedded defaults,
// then a crsops.toml from the well-known configuration directories, then
// CRSOPS_* environment variables, each layer overriding the previous one.
package config
