package transform

import (
	"fmt"
	"math"

	"github.com/arthur-debert/crsops/pkg/errors"
	"github.com/arthur-debert/crsops/pkg/types"
)

// FamilyAffine is the PARAM_MT family name of the affine transform.
const FamilyAffine = "affine"

// Affine parameter names follow the WKT matrix-element convention:
// elt_<row>_<col> of the 2x3 augmented matrix.
//
//	x' = elt_0_0*x + elt_0_1*y + elt_0_2
//	y' = elt_1_0*x + elt_1_1*y + elt_1_2
//
// Missing elements default to the identity matrix.
type Affine struct {
	A, B, C float64 // first row
	D, E, F float64 // second row
}

// NewAffine builds an affine transform from PARAM_MT parameters.
func NewAffine(params map[string]float64) (types.Transform, error) {
	aff := &Affine{A: 1, E: 1}
	for name, value := range params {
		switch name {
		case "elt_0_0":
			aff.A = value
		case "elt_0_1":
			aff.B = value
		case "elt_0_2":
			aff.C = value
		case "elt_1_0":
			aff.D = value
		case "elt_1_1":
			aff.E = value
		case "elt_1_2":
			aff.F = value
		case "num_row", "num_col":
			// Accepted for WKT compatibility; only 2D is supported.
			if value != 3 {
				return nil, errors.Newf(errors.ErrTransformInvalid,
					"affine %s must be 3, got %g", name, value)
			}
		default:
			return nil, errors.Newf(errors.ErrTransformInvalid,
				"unknown affine parameter %q", name)
		}
	}
	return aff, nil
}

// Apply maps a coordinate through the affine matrix.
func (t *Affine) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.B*y + t.C, t.D*x + t.E*y + t.F
}

// Inverse returns the exact inverse affine transform. A singular matrix
// is not invertible.
func (t *Affine) Inverse() (types.Transform, error) {
	det := t.A*t.E - t.B*t.D
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return nil, errors.Newf(errors.ErrNotInvertible,
			"affine transform is singular (det=%g)", det)
	}
	return &Affine{
		A: t.E / det,
		B: -t.B / det,
		C: (t.B*t.F - t.E*t.C) / det,
		D: -t.D / det,
		E: t.A / det,
		F: (t.D*t.C - t.A*t.F) / det,
	}, nil
}

func (t *Affine) String() string {
	return fmt.Sprintf("affine[%g %g %g; %g %g %g]", t.A, t.B, t.C, t.D, t.E, t.F)
}
