package types

import "io/fs"

// FS is the filesystem abstraction used by the locator and the definition
// compiler. The resolver only ever reads, so the interface is read-only;
// pkg/filesystem provides the OS implementation and an afero adapter for
// in-memory test filesystems.
type FS interface {
	// Stat returns file info for the named file.
	Stat(name string) (fs.FileInfo, error)

	// ReadFile reads the named file and returns its contents.
	ReadFile(name string) ([]byte, error)
}

// Catalog resolves authority codes to reference-system objects.
type Catalog interface {
	// Decode resolves a bare ("4326") or authority-qualified
	// ("EPSG:4326") code. Repeated calls for one code return the same
	// pointer. Unknown codes fail with a NO_SUCH_CODE error.
	Decode(code string) (*ReferenceSystem, error)
}

// OperationResolver resolves coordinate operations for code pairs. It is
// the contract both the focal resolver and every fallback link in the
// priority chain implement.
type OperationResolver interface {
	// Authority returns the naming authority this resolver serves,
	// e.g. "EPSG". It never triggers initialization.
	Authority() string

	// Resolve returns the operation for the ordered code pair, or a
	// coded error (NO_SUCH_CODE at the end of the chain).
	Resolve(sourceCode, targetCode string) (*Operation, error)

	// ResolveByReferenceSystems resolves each reference (bare or
	// authority-qualified) and collects the operations applicable to
	// the pair. A well-formed but unknown pair yields an empty result
	// and no error; a malformed reference fails with INVALID_REFERENCE.
	ResolveByReferenceSystems(sourceRef, targetRef string) ([]*Operation, error)
}
