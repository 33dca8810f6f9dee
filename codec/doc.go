// Package codec converts between value trees and their exact byte layout,
// driven by a schema of structures, enumerations, bit fields, and groups.
//
// A value tree is a single-key map from a definition name to its payload:
//
//	c := codec.New(defs, codec.Big)
//	data, err := c.Encode(map[string]any{
//		"commands": map[string]any{
//			"cmd_temperature_set": map[string]any{
//				"temperature": 75,
//				"units":       "f",
//			},
//		},
//	})
//
// Encoding is strict: any value that cannot be laid out byte-exactly is an
// error. Decoding is best effort: a slice that cannot be interpreted
// structurally degrades to an Opaque hex dump at that level while the rest
// of the tree still decodes, since malformed frames from field devices are
// exactly the ones worth inspecting.
//
// The codec operates on raw, unvalidated definitions so that byte streams
// can be examined even against schemas the validator would reject. Run
// schema.FromRaw first when strictness matters.
package codec
