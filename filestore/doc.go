// Package filestore contains concrete implementations of the core.FileStore.
//
// The canonical FileStore interface lives in the core package to avoid
// dependency cycles and keep domain contracts central. Implementation
// packages like this one (directory-backed, in-memory, cloud object stores)
// provide storage backends that can be swapped without touching calling code.
//
// Callers should depend on the core interface rather than concrete types so
// they can substitute alternative persistence layers in tests or production.
package filestore
