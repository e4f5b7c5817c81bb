// Package repl provides the interactive shell of libros-cli.
//
//   - repl.go: read-eval-print loop and built-in commands
//   - split.go: shell-like splitting of a line into arguments
//   - completer.go: command name completion and suggestions
//   - history.go: persistent command history (~/.libros/history)
//
// Each line is split into arguments and handed to an Executor, normally
// the same urfave/cli application used in single-command mode, so both
// modes share flags, output and error handling.
package repl
