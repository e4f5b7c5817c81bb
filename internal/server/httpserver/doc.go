// Package httpserver hosts an HTTP handler for libros-mock.
//
// It wraps net/http with the middleware chain the mock catalog runs
// behind:
//
//   - Recover: turns handler panics into a 500 with a detail body
//   - RequestID: honours or assigns X-Request-ID
//   - AccessLog: one structured log line per request
//   - CORS: lets a browser front end on another origin call the API
//
// Servers listen on TCP or Unix sockets, optionally with TLS, and shut
// down gracefully.
package httpserver
