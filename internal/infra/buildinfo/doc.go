// Package buildinfo exposes build-time information injected via ldflags:
//
//   - Version: semantic version (e.g., "v1.2.0")
//   - Commit: git commit hash
//   - BuildTime: build timestamp
//
// Usage:
//
//	go build -ldflags "-X github.com/yndnr/libros-go/internal/infra/buildinfo.Version=v1.2.0" ./cmd/libros-cli
package buildinfo
