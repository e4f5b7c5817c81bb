// Package shutdown coordinates cleanup when libros-cli exits.
//
// Hooks (closing the session store, saving REPL history) run exactly
// once, in reverse order of registration, whether the process ends
// normally or on SIGINT/SIGTERM.
//
// Usage:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	ctx, stop := h.NotifyContext(context.Background())
//	defer stop()
//	defer h.Shutdown()
package shutdown
