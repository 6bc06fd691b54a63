package transform

import (
	"fmt"

	"github.com/arthur-debert/crsops/pkg/errors"
	"github.com/arthur-debert/crsops/pkg/registry"
	"github.com/arthur-debert/crsops/pkg/types"
)

// FamilyLongitudeRotation is the PARAM_MT family name of the longitude
// rotation transform.
const FamilyLongitudeRotation = "longitude_rotation"

func init() {
	mustRegisterFamily(FamilyAffine, NewAffine)
	mustRegisterFamily(FamilyLongitudeRotation, NewLongitudeRotation)
}

// mustRegisterFamily registers a factory at init; a failure there is a
// programming error.
func mustRegisterFamily(name string, factory registry.TransformFactory) {
	if err := registry.RegisterTransformFactory(name, factory); err != nil {
		panic(fmt.Sprintf("failed to register transform family %s: %v", name, err))
	}
}

// LongitudeRotation shifts the first ordinate by a fixed offset, the WKT
// "Longitude_Rotation" used for prime-meridian changes.
type LongitudeRotation struct {
	Offset float64
}

// NewLongitudeRotation builds a longitude rotation from PARAM_MT
// parameters. The only parameter is longitude_offset.
func NewLongitudeRotation(params map[string]float64) (types.Transform, error) {
	rot := &LongitudeRotation{}
	for name, value := range params {
		switch name {
		case "longitude_offset":
			rot.Offset = value
		default:
			return nil, errors.Newf(errors.ErrTransformInvalid,
				"unknown longitude_rotation parameter %q", name)
		}
	}
	return rot, nil
}

func (t *LongitudeRotation) Apply(x, y float64) (float64, float64) {
	return x + t.Offset, y
}

func (t *LongitudeRotation) Inverse() (types.Transform, error) {
	return &LongitudeRotation{Offset: -t.Offset}, nil
}

func (t *LongitudeRotation) String() string {
	return fmt.Sprintf("longitude_rotation[%g]", t.Offset)
}

// Identity returns the identity transform.
func Identity() types.Transform {
	return &Affine{A: 1, E: 1}
}

// Concatenated applies its elements in order. Its inverse reverses the
// order and inverts each element.
type Concatenated struct {
	Steps []types.Transform
}

// NewConcatenated builds a concatenation. Zero steps is the identity;
// a single step collapses to that step.
func NewConcatenated(steps ...types.Transform) types.Transform {
	switch len(steps) {
	case 0:
		return Identity()
	case 1:
		return steps[0]
	}
	return &Concatenated{Steps: steps}
}

func (t *Concatenated) Apply(x, y float64) (float64, float64) {
	for _, step := range t.Steps {
		x, y = step.Apply(x, y)
	}
	return x, y
}

func (t *Concatenated) Inverse() (types.Transform, error) {
	inverted := make([]types.Transform, len(t.Steps))
	for i, step := range t.Steps {
		inv, err := step.Inverse()
		if err != nil {
			return nil, err
		}
		inverted[len(t.Steps)-1-i] = inv
	}
	return &Concatenated{Steps: inverted}, nil
}

func (t *Concatenated) String() string {
	return fmt.Sprintf("concatenated[%d steps]", len(t.Steps))
}
