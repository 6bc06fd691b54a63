// Package wkt parses the math-transform subset of Well Known Text used by
// operation definitions:
//
//	PARAM_MT["Affine",
//	    PARAMETER["elt_0_2", -0.0004271158000573],
//	    PARAMETER["elt_1_2", 0.001581577481225]]
//	CONCAT_MT[<mt>, <mt>, ...]
//	INVERSE_MT[<mt>]
//
// Family names are case-insensitive ("Affine", "affine" and
// "Longitude_Rotation" all work); the parser resolves them through the
// transform-factory registry, so it never depends on concrete transform
// types.
package wkt
