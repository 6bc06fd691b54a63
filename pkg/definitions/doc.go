// Package definitions implements the backing store of the operation
// resolver: it loads a catalog of declarative operation definitions and
// compiles them into executable operations on demand.
//
// The canonical catalog format is a TOML table keyed by composite code:
//
//	"4230,4326" = """PARAM_MT["Affine",
//	    PARAMETER["elt_0_2", -0.0004271158000573],
//	    PARAMETER["elt_1_2", 0.001581577481225]]"""
//
// An XML variant is accepted at the same search locations (chosen by the
// .xml file extension) for interchange with tools that emit operation
// lists:
//
//	<operations>
//	    <operation source="4230" target="4326">PARAM_MT[...]</operation>
//	</operations>
//
// Definitions are immutable once loaded. Each pair is compiled at most
// once; the compiled operation is memoized for the compiler's lifetime.
package definitions
