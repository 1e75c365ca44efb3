// Package viewer models the boundary to the embedded rendering surface: the
// externally supplied, independently loaded document viewer/editor this
// subsystem integrates with but does not implement.
//
// All surface-specific knowledge is isolated behind small capability
// interfaces (Surface, DOM, PrefStore) with exactly the operations the
// session and protocol layers need: load a document from a byte reference,
// exchange untyped messages, pre-seed the surface's own preference state, and
// patch known DOM anchors once the surface reports loaded. This keeps the
// surface swappable and mockable in tests.
package viewer
