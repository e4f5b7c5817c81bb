// Package service provides the catalog client services.
//
// Services hold the client-side rules and talk to the catalog through
// the Gateway interface, keeping transport and storage injectable for tests.
//
// This package contains:
//
//   - CatalogService: list, get, search by category, create, update and delete books
//   - SessionService: login, logout and authentication state over a TokenStore
//
// A 401 seen by CatalogService is reported to an UnauthorizedHandler;
// SessionService implements it by clearing the stored token.
package service
