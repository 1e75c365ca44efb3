// Package testutil contains helper fakes and builders used across tests to
// reduce boilerplate when exercising the session, protocol and viewer layers:
// a scripted embedded surface and DOM, an in-memory preference store, and a
// recording downloader. These helpers are intentionally minimal and are not
// intended for production usage.
package testutil
