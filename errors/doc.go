// Package errors provides structured error types for schema validation and
// the binary codec.
//
// Errors carry a Phase (validate, encode, decode, load), a Kind from a fixed
// taxonomy, and a Path of definition and member names joined with "::" so
// that a failure deep in a nested schema names its exact location, e.g.
//
//	[validate] size_mismatch at simple_struct::number: declared size 0, measured 1
//
// Matching uses errors.Is semantics on the Phase and Kind pair:
//
//	if errors.Is(err, &errors.Error{Phase: errors.PhaseValidate, Kind: errors.KindSizeMismatch}) {
//	    ...
//	}
package errors
