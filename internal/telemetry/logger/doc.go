// Package logger provides structured logging for the libros client.
//
//   - logger.go: log/slog based logger, levels and output format
//   - context.go: request IDs carried on the logging context
//   - redact.go: redaction of passwords, tokens and bearer credentials
package logger
