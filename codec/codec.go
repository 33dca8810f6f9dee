package codec

import (
	"strings"

	"go.uber.org/zap"

	"github.com/structwire/structwire/codec/internal/bin"
	"github.com/structwire/structwire/errors"
	"github.com/structwire/structwire/schema"
)

// Endianness selects the byte order for multi-byte integers.
type Endianness int

const (
	Big Endianness = iota
	Little
)

func (e Endianness) String() string {
	if e == Little {
		return "little"
	}
	return "big"
}

// ParseEndianness parses "big" or "little".
func ParseEndianness(s string) (Endianness, error) {
	switch s {
	case "big":
		return Big, nil
	case "little":
		return Little, nil
	}
	return Big, errors.New(errors.PhaseLoad, errors.KindInvalidData).
		Detail("endianness %q is not \"big\" or \"little\"", s).
		Build()
}

func (e Endianness) order() bin.Order {
	if e == Little {
		return bin.Little
	}
	return bin.Big
}

// Opaque is the annotated hex dump produced when a byte slice cannot be
// decoded structurally, e.g. "5A (len=1)". It is a first-class decode
// result, not an error: every input produces some output.
type Opaque string

func (o Opaque) String() string { return string(o) }

// Integer-bearing fields wider than this are not representable without
// big-integer arithmetic and are rejected.
const maxIntBytes = 8

// Codec encodes and decodes values against a schema in a fixed byte order.
// The zero reserved fill matches the documented convention; schemas that
// expect 0xFF filler can opt in with WithReservedFill.
type Codec struct {
	defs         schema.RawDefinitions
	log          *zap.Logger
	warnings     *WarningRegistry
	order        bin.Order
	reservedFill byte
}

// New creates a Codec over the given definitions. The codec never mutates
// the schema tree; a single Codec is safe for concurrent use.
func New(defs schema.RawDefinitions, order Endianness) *Codec {
	return &Codec{
		defs:         defs,
		log:          Logger(),
		warnings:     DefaultWarnings(),
		order:        order.order(),
		reservedFill: 0x00,
	}
}

// WithReservedFill sets the byte used for reserved filler regions.
func (c *Codec) WithReservedFill(fill byte) *Codec {
	c.reservedFill = fill
	return c
}

// WithWarnings replaces the process-wide deprecation warning registry,
// letting tests observe and reset one-time warnings deterministically.
func (c *Codec) WithWarnings(r *WarningRegistry) *Codec {
	c.warnings = r
	return c
}

// WithLogger sets the logger for this codec instance.
func (c *Codec) WithLogger(l *zap.Logger) *Codec {
	c.log = l
	return c
}

// singleKey unwraps the {name: payload} shape of value trees.
func singleKey(m map[string]any) (string, any, bool) {
	if len(m) != 1 {
		return "", nil, false
	}
	for k, v := range m {
		return k, v, true
	}
	return "", nil, false
}

// appendPath copies before appending so sibling recursions never share
// backing arrays.
func appendPath(path []string, elem string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, elem)
}

// joinPath renders a value path for log fields.
func joinPath(path []string) string {
	return strings.Join(path, "::")
}
