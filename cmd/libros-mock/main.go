package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/yndnr/libros-go/internal/catalogtest"
	"github.com/yndnr/libros-go/internal/cli/connection"
	"github.com/yndnr/libros-go/internal/core/domain"
	"github.com/yndnr/libros-go/internal/infra/buildinfo"
	"github.com/yndnr/libros-go/internal/infra/shutdown"
	"github.com/yndnr/libros-go/internal/server/httpserver"
	"github.com/yndnr/libros-go/internal/telemetry/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		listen      = flag.String("listen", ":8000", "Listen address (host:port or unix:///path)")
		user        = flag.String("user", "admin@libros.local", "Accepted login email")
		password    = flag.String("password", "admin", "Accepted login password")
		seedFile    = flag.String("seed", "", "JSON file with an array of books to preload")
		open        = flag.Bool("open", false, "Serve the catalog without requiring a token")
		corsOrigins = flag.String("cors", "", "Comma-separated origins allowed by CORS (\"*\" for any)")
		tlsCert     = flag.String("tls-cert", "", "TLS certificate file (enables https)")
		tlsKey      = flag.String("tls-key", "", "TLS key file")
		logLevel    = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("libros-mock %s\n", buildinfo.String())
		return nil
	}

	if (*tlsCert == "") != (*tlsKey == "") {
		return errors.New("--tls-cert and --tls-key must be given together")
	}

	log, err := logger.New(logger.Config{
		Level:  *logLevel,
		Format: "text",
		Output: os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	opts := []catalogtest.Option{catalogtest.WithUser(*user, *password)}
	if *seedFile != "" {
		books, err := loadSeed(*seedFile)
		if err != nil {
			return err
		}
		opts = append(opts, catalogtest.WithBooks(books...))
		log.Info("catalog seeded", "books", len(books), "file", *seedFile)
	}
	if *open {
		opts = append(opts, catalogtest.WithOpenAccess())
	}
	catalog := catalogtest.New(opts...)

	ln, err := listener(*listen)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	httpServer := httpserver.New(catalog.Handler(), &httpserver.MiddlewareConfig{
		Logger:         logger.AsSlog(log),
		AllowedOrigins: splitList(*corsOrigins),
	})

	shutdownHandler := shutdown.NewHandler(10 * time.Second)
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	go func() {
		log.Info("libros-mock listening", "addr", ln.Addr().String(), "user", *user, "open", *open, "tls", *tlsCert != "")

		var err error
		if *tlsCert != "" {
			err = httpServer.ServeTLS(ln, *tlsCert, *tlsKey)
		} else {
			err = httpServer.Serve(ln)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}
	log.Info("server stopped")
	return nil
}

// listener opens a TCP or Unix socket listener for addr.
func listener(addr string) (net.Listener, error) {
	ln, isSocket, err := connection.ListenSocket(addr)
	if isSocket {
		return ln, err
	}
	return net.Listen("tcp", addr)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadSeed reads a JSON array of books.
func loadSeed(path string) ([]domain.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var books []domain.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return books, nil
}
