// Package schema models fixed-layout wire structure definitions and
// validates them for internal consistency.
//
// A schema document is a nested key-value tree (loaded from TOML, JSON, or
// YAML by package schemafile) holding one entry per definition plus a "file"
// metadata record. Definitions come in four kinds:
//
//   - structure: a fixed-size sequential record of named, sized members
//   - enum: a closed set of named integer values with a storage width
//   - bit_field: a byte-sized container subdivided into named bit ranges
//   - group: a tagged union whose variants back-reference it by name
//
// FromRaw turns the raw tree into checked TypeDefinitions, deriving omitted
// enum ordinals and bit-field ranges and rejecting inconsistent sizes.
// Definitions reference each other only by name, never by pointer, so the
// validated map can be shared freely across goroutines once built.
//
// The RawDefinitions view over the unvalidated tree is shared with package
// codec, which tolerates raw as well as validated schemas.
package schema
