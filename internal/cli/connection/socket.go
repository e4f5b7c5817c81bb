package connection

import (
	"context"
	"net"
	"net/http"
	"strings"
)

// SocketScheme prefixes server addresses served on a Unix domain socket,
// e.g. unix:///run/libros.sock.
const SocketScheme = "unix://"

// socketBaseURL is the placeholder origin used for socket requests; the
// host is never resolved.
const socketBaseURL = "http://unix"

// socketPath extracts the socket path from a unix:// address.
func socketPath(server string) (string, bool) {
	if !strings.HasPrefix(server, SocketScheme) {
		return "", false
	}
	path := strings.TrimPrefix(server, SocketScheme)
	return path, path != ""
}

// newSocketTransport returns a transport that dials path for every request.
func newSocketTransport(path string) *http.Transport {
	dialer := &net.Dialer{}
	return &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			return dialer.DialContext(ctx, "unix", path)
		},
	}
}

// ListenSocket listens on the Unix socket named by a unix:// address.
// It reports false when server is not a socket address.
func ListenSocket(server string) (net.Listener, bool, error) {
	path, ok := socketPath(server)
	if !ok {
		return nil, false, nil
	}
	ln, err := net.Listen("unix", path)
	return ln, true, err
}
