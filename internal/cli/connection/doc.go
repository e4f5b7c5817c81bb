// Package connection is the HTTP gateway between libros-cli and the
// catalog server.
//
//   - http.go: HTTPClient, bearer attachment and response parsing
//   - socket.go: HTTP over a Unix domain socket (unix:// server addresses)
//
// The gateway reads the session token through a TokenSource right before
// each request and never modifies it. Non-2xx responses are returned as
// *StatusError with the raw body; classification happens in the caller.
package connection
