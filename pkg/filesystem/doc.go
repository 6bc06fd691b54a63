// Package filesystem provides the types.FS implementations crsops reads
// through: the OS filesystem for production and an afero adapter so tests
// can run against in-memory filesystems.
package filesystem
