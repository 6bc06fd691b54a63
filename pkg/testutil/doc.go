// Package testutil provides shared test helpers: tolerance assertions
// for coordinate comparisons and fixtures that stage definition catalogs
// on in-memory filesystems.
package testutil
