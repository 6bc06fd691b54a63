package testutil

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/crsops/pkg/filesystem"
	"github.com/arthur-debert/crsops/pkg/locator"
	"github.com/arthur-debert/crsops/pkg/types"
	"github.com/spf13/afero"
)

// Tolerance is the numerical tolerance resolved operations are held to.
const Tolerance = 1e-8

// Reference points of the 4230 -> 4326 sample definition.
var (
	SrcTestPoint = [2]float64{3.084896111, 39.592654167}
	DstTestPoint = [2]float64{3.0844689951999427, 39.594235744481225}
)

// SampleDefinitionsTOML is a minimal definitions catalog holding the
// 4230 -> 4326 datum shift used throughout the tests.
const SampleDefinitionsTOML = `"4230,4326" = """CONCAT_MT[
    PARAM_MT["Affine",
        PARAMETER["elt_0_2", -0.0004271158000573],
        PARAMETER["elt_1_2", 0.001581577481225]]]"""
`

// SampleDefinitionsXML is the same catalog in the XML interchange format.
const SampleDefinitionsXML = `<operations>
    <operation source="4230" target="4326">PARAM_MT["Affine",
        PARAMETER["elt_0_2", -0.0004271158000573],
        PARAMETER["elt_1_2", 0.001581577481225]]</operation>
</operations>
`

// AssertPointNear fails the test when a transformed point drifts from the
// expected one beyond the tolerance.
func AssertPointNear(t *testing.T, wantX, wantY, gotX, gotY, tolerance float64) {
	t.Helper()

	if math.Abs(gotX-wantX) > tolerance || math.Abs(gotY-wantY) > tolerance {
		t.Errorf("point (%.12g, %.12g) differs from expected (%.12g, %.12g) beyond %g",
			gotX, gotY, wantX, wantY, tolerance)
	}
}

// DefinitionsFS stages a definitions file on an in-memory filesystem and
// returns the filesystem plus the directory to use as the override.
func DefinitionsFS(t *testing.T, filename, content string) (types.FS, string) {
	t.Helper()

	const dir = "/definitions"
	mem := afero.NewMemMapFs()
	if err := afero.WriteFile(mem, filepath.Join(dir, filename), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to stage definitions file: %v", err)
	}
	return filesystem.NewAferoFS(mem), dir
}

// DefinitionsLocation stages a definitions file and locates it, failing
// the test when the locator cannot find it.
func DefinitionsLocation(t *testing.T, filename, content string) locator.Location {
	t.Helper()

	fsys, dir := DefinitionsFS(t, filename, content)
	loc, ok := locator.Locate(fsys, dir, filename, nil)
	if !ok {
		t.Fatalf("staged definitions file %s was not located", filename)
	}
	return loc
}
