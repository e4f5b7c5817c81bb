// Package session holds the client's single authentication token.
//
// A Store keeps at most one token under a fixed key. Backends:
//
//   - file.go: token file in the user's config directory (default)
//   - badger.go: Badger KV directory via internal/storage
//   - store.go: in-process memory (tests, --ephemeral)
//
// Processes sharing one backend observe the same token; watch.go reports
// changes made by other processes.
package session
