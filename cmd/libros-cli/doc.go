// Package main provides the entry point for libros-cli.
//
// The CLI gives command-line access to a libros catalog server:
//
//   - Session management (login, logout, status)
//   - Book browsing and editing (list, get, search, create, update, delete)
//   - Configuration inspection
//
// Usage:
//
//	libros-cli [global flags] command [flags]
//	libros-cli login --email ana@example.com
//	libros-cli -o json book list
//	libros-cli shell
//
// The CLI supports both single-command mode and interactive REPL mode.
package main
