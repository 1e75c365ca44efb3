// Package protocol implements the cross-context save/backup protocol between
// the host and the embedded rendering surface. The two sides share no memory
// and no call interface; coordination is discrete, ordered, best-effort
// asynchronous messages with at-most-once delivery and no acknowledgment.
//
// The channel is an unauthenticated broadcast that may carry unrelated
// traffic, so every envelope is parsed at the boundary: the kind and source
// discriminants are validated before any other field is trusted, and
// unknown or malformed envelopes are dropped (ErrIgnored), never processed.
package protocol
