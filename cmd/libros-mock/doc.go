// Package main provides the entry point for libros-mock.
//
// libros-mock is an in-memory catalog server speaking the same REST
// protocol as the production service. It is meant for local development
// and demos of libros-cli; all data is lost on exit.
//
// Usage:
//
//	libros-mock --listen :8000 --user ana@example.com --password s3cret
//	libros-mock --listen unix:///tmp/libros.sock --seed books.json
//	libros-mock --tls-cert cert.pem --tls-key key.pem --cors http://localhost:5173
package main
