// Package output renders command results for libros-cli.
//
//   - formatter.go: Formatter interface and factory
//   - table.go: book tables with wide mode, key/value tables
//   - json.go: JSON output formatting
//   - yaml.go: YAML output formatting
//   - spinner.go: progress animation while a request is in flight
//
// Table output is for people; json and yaml keep the wire field names
// (codigo, titulo, ...) for scripting.
package output
