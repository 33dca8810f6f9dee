// Package structwire converts structured values to and from exact binary
// layouts, driven by schema documents describing structures, enumerations,
// bit fields, and tagged-union groups.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	structwire/
//	├── schemafile/      Schema document loading from TOML, JSON, and YAML
//	├── schema/          Definition model, validation, and bit-range layout
//	├── codec/           Encoding and decoding against a schema
//	├── errors/          Structured error types for debugging
//	└── cmd/structwire/  CLI for inspecting schemas and byte streams
//
// # Quick Start
//
// Load a schema and decode a byte stream:
//
//	raw, err := schemafile.Load("thermostat.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	c := codec.New(raw, codec.Big)
//	result := c.Decode([]byte{0x02, 0x00, 0x4B, 0x01}, "commands")
//	fmt.Println(result) // map[cmd_temperature_set:map[temperature:75 units:f]]
//
// Encoding takes the same tree shape back to bytes:
//
//	data, err := c.Encode(map[string]any{
//	    "commands": map[string]any{
//	        "cmd_temperature_set": map[string]any{
//	            "temperature": 75,
//	            "units":       "f",
//	        },
//	    },
//	})
//
// # Schema Model
//
// A schema is a map of named definitions:
//
//   - structure: ordered fixed-size members, primitives or other definitions
//   - enum: labeled integer values, with C-style ordinal derivation
//   - bit_field: sub-byte members packed by bit position into an integer
//   - group: a tagged union dispatching to member definitions by wire tag
//
// Primitive member types are int, uint, bool, str, bytes, and reserved.
//
// # Error Model
//
// Encoding is strict and returns *errors.Error with the phase, kind, and
// the "::"-separated path to the failing element. Decoding never fails:
// undecodable slices degrade to codec.Opaque hex dumps in place.
//
// # Thread Safety
//
// A Codec is immutable after construction and safe for concurrent use.
package structwire
