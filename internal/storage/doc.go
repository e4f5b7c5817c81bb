// Package storage provides the embedded key-value engine backing
// persistent client state.
//
// The engine is Badger v3. Client state is small (a session token), so
// only point reads, writes and deletes are exposed.
package storage
