// Package metric provides Prometheus metrics for the libros client.
//
//   - prometheus.go: request metrics for the HTTP gateway, exposition dump
//   - collector.go: session state collector
//
// Metrics live in a private registry per process; the REPL prints them
// on demand. Nothing is pushed or served.
package metric
