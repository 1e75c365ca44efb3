// Package signature contains concrete implementations of the
// core.SignatureStore: a transactional SQLite backend for durable
// user-created signatures and an in-memory backend for tests and demos.
//
// The interface itself (and the Signature record) live in the core package to
// centralize domain contracts. Keeping only implementations here prevents
// higher level packages from depending on concrete storage.
package signature
