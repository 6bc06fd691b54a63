// Package transform implements the executable coordinate transforms
// compiled from operation definitions: a general 2D affine transform, a
// longitude rotation, and concatenation. Every transform exposes an exact
// mathematical inverse, which is how inverse operations are derived from
// a forward definition without re-fitting parameters.
//
// Each family registers a factory in pkg/registry under its PARAM_MT
// family name; the WKT compiler dispatches on those names and never needs
// to know the concrete transform types.
package transform
