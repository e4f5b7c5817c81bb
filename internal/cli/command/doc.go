// Package command provides CLI command definitions for libros-cli.
//
// It uses urfave/cli/v2 for command parsing and supports both
// single-command mode and the interactive shell:
//
//   - root.go: application, global flags and runtime wiring
//   - auth.go: login, logout, status
//   - book.go: book list/get/search/create/update/delete
//   - config.go: config show/validate/init
//   - version.go: build information
//   - shell.go: interactive REPL sharing one runtime across lines
package command
