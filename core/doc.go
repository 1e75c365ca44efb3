// Package core provides the foundational domain types and interfaces used by
// pdfcraft. It defines the core abstractions for:
//
//   - Files (in-memory documents with a name and MIME type)
//   - Pluggable stores for document blobs, signature artifacts and
//     recent-file history
//   - Tools (the independent views a document can be opened in) and their
//     reserved session snapshot names
//   - The shared error taxonomy (NotFound, Unsupported, StoreError)
//
// The package intentionally keeps implementation concerns (persistence,
// viewer integration, session orchestration) out of scope, exposing small
// interfaces to enable custom backends and extensions.
package core
