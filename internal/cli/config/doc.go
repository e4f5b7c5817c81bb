// Package config provides CLI configuration for libros.
//
// This package defines CLI-specific configuration:
//
//   - spec.go: CLIConfig struct (~/.libros/cli.yaml)
//   - loader.go: Configuration loading, merging and saving
//
// Configuration includes:
//
//   - Catalog server address
//   - Output format preference
//   - Session store backend and location
//   - Request timeout and client-side rate limit
//   - Log level
package config
