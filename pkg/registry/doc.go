// Package registry provides a generic, thread-safe registry plus the two
// global registries crsops relies on: the transform-family factories the
// WKT compiler dispatches on, and the priority-ordered chain of operation
// resolvers that supplies each resolver's fallback link.
//
// The chain is deliberately minimal: entries are registered with a
// priority, and NextResolver returns the best entry strictly below a
// given priority. It is a chain-link supplier, not a plugin discovery
// mechanism.
package registry
