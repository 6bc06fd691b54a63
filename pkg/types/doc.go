// Package types defines the core domain types and contracts shared across
// crsops: reference systems, executable transforms, compiled coordinate
// operations, and the resolver and catalog interfaces the packages depend on.
//
// The package is deliberately dependency-light so that any package can
// import it without cycles. Concrete implementations live elsewhere:
// pkg/transform for transforms, pkg/catalog for the reference-system
// catalog, pkg/resolver for the operation resolver, and pkg/filesystem
// for the FS implementations.
package types
