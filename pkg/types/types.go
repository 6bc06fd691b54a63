package types

import "fmt"

// CodeSeparator joins a source and target code into the composite
// "source,target" code used as the key of the definitions catalog.
const CodeSeparator = ","

// PairCode returns the composite code for a source/target pair, exactly as
// it appears in the definitions catalog and in NO_SUCH_CODE errors.
func PairCode(sourceCode, targetCode string) string {
	return sourceCode + CodeSeparator + targetCode
}

// ReferenceSystem describes a single spatial reference system. Instances
// are created by the catalog and memoized: two Decode calls for the same
// code return the same pointer, so callers may compare by identity.
type ReferenceSystem struct {
	// Code is the bare authority code, e.g. "4326".
	Code string

	// Authority is the naming authority, e.g. "EPSG".
	Authority string

	// Name is the human-readable name, e.g. "WGS 84".
	Name string

	// Kind distinguishes geographic from projected systems.
	Kind ReferenceSystemKind
}

// String returns the authority-qualified code, e.g. "EPSG:4326".
func (rs *ReferenceSystem) String() string {
	if rs == nil {
		return ""
	}
	if rs.Authority == "" {
		return rs.Code
	}
	return rs.Authority + ":" + rs.Code
}

// ReferenceSystemKind is the coarse classification of a reference system.
type ReferenceSystemKind string

const (
	KindGeographic ReferenceSystemKind = "geographic"
	KindProjected  ReferenceSystemKind = "projected"
)

// Transform is an executable two-dimensional coordinate transform.
//
// Implementations are immutable and safe for concurrent use. Inverse
// derives the exact mathematical inverse of the transform; it never
// re-fits parameters, so forward followed by inverse reproduces the
// input within the forward transform's numerical precision.
type Transform interface {
	// Apply maps a coordinate through the transform.
	Apply(x, y float64) (float64, float64)

	// Inverse returns the inverse transform, or an error when the
	// transform is not invertible (e.g. a singular affine matrix).
	Inverse() (Transform, error)
}

// Operation is a compiled coordinate operation: a directed transform
// between two reference systems, resolved from a definition (or derived
// by inverting the definition for the swapped pair).
type Operation struct {
	// Code is the composite "source,target" code this operation answers.
	Code string

	// Source and Target are the catalog objects for the endpoints.
	Source *ReferenceSystem
	Target *ReferenceSystem

	// Transform maps source coordinates to target coordinates.
	Transform Transform

	// Derived is true when the operation was synthesized by inverting
	// the definition stored under the swapped code pair.
	Derived bool
}

// String describes the operation for logs and CLI output.
func (op *Operation) String() string {
	if op == nil {
		return ""
	}
	return fmt.Sprintf("%s -> %s", op.Source, op.Target)
}
