// Package catalogtest provides an in-memory catalog server speaking the
// same REST protocol as the real catalog service.
//
// It backs the libros-mock binary and the service and command tests:
//
//	srv := catalogtest.New(catalogtest.WithUser("ana@example.com", "secret"))
//	url := srv.Start(t)
//
// Codes and tokens come from uuid unless fixed sequences are injected.
package catalogtest
