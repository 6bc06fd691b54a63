// Package resolver turns pairs of reference-system codes into coordinate
// operations backed by a user-supplied definitions catalog.
//
// A Resolver searches for its definitions file lazily, on the first
// resolution request. The search order is the explicit override directory,
// then the well-known configuration directories, then any bundled
// resources. Once a resolution has been attempted the outcome is sticky:
// a missing file stays missing for the lifetime of the resolver, while a
// file that failed to load is retried on the next request.
//
// Lookups that miss the local catalog are retried with the roles swapped,
// deriving the inverse operation, and finally delegated to a lower
// priority resolver when one is configured or registered.
package resolver
