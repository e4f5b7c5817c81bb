// Package domain defines the core domain models for the libros catalog client.
//
// Domain models are pure value objects without any IO dependencies
// or framework coupling. This package contains:
//
//   - Book: catalog record and the input shape used for create/update
//   - Credentials: transient login pair
//   - Errors: coded domain errors and the server error classifier
package domain
