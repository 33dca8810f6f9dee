package codec

import (
	"strings"

	"go.uber.org/zap"

	"github.com/structwire/structwire/codec/internal/bin"
	"github.com/structwire/structwire/errors"
	"github.com/structwire/structwire/schema"
)

// Decode interprets data as the named definition and returns a value tree.
// Decoding never fails: any slice that cannot be interpreted structurally
// degrades to an Opaque hex dump at that level, so field devices emitting
// malformed frames still yield a readable result.
func (c *Codec) Decode(data []byte, typeName string) any {
	return c.decodeBestEffort(data, typeName, nil)
}

func (c *Codec) decodeBestEffort(data []byte, typeName string, path []string) any {
	v, err := c.decodeElement(data, typeName, path)
	if err != nil {
		c.log.Warn("degrading undecodable bytes to an opaque dump",
			zap.String("type", typeName),
			zap.String("path", joinPath(path)),
			zap.Error(err))
		return Opaque(bin.Dump(data))
	}
	return v
}

func (c *Codec) decodeElement(data []byte, typeName string, path []string) (any, error) {
	path = appendPath(path, typeName)

	def, ok := c.defs.Definition(typeName)
	if !ok {
		return c.decodePrimitive(data, typeName, path)
	}

	switch tag := def.TypeTag(); tag {
	case "group":
		return c.decodeGroup(def, typeName, data, path)
	case "structure":
		return c.decodeStructure(def, data, path)
	case "enum":
		return c.decodeEnum(def, typeName, data, path)
	case "bit_field":
		return c.decodeBitField(def, data, path)
	default:
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidType).
			Path(path...).
			Detail("type %q is not one of structure, enum, bit_field, group", tag).
			Build()
	}
}

func (c *Codec) decodeStructure(def schema.RawDef, data []byte, path []string) (any, error) {
	if size, ok := def.Size(); ok && len(data) != size {
		return nil, errors.LengthMismatch(errors.PhaseDecode, path, size, len(data))
	}

	out := map[string]any{}
	cursor := 0
	for _, member := range def.List("members") {
		name, ok := member.String("name")
		if !ok {
			return nil, errors.RequiredFieldMissing("structure member", path, "name")
		}
		memberPath := appendPath(path, name)
		typ, ok := member.String("type")
		if !ok {
			return nil, errors.RequiredFieldMissing("structure member", memberPath, "type")
		}
		size, ok := member.Int("size")
		if !ok {
			return nil, errors.RequiredFieldMissing("structure member", memberPath, "size")
		}

		end := cursor + int(size)
		if end > len(data) {
			return nil, errors.LengthMismatch(errors.PhaseDecode, memberPath,
				end, len(data))
		}
		out[name] = c.decodeBestEffort(data[cursor:end], typ, path)
		cursor = end
	}

	if cursor != len(data) {
		return nil, errors.LengthMismatch(errors.PhaseDecode, path, cursor, len(data))
	}
	return out, nil
}

// decodeEnum maps the wire integer back to its label, re-deriving omitted
// ordinals the way the encoder does. Signedness follows an explicit flag
// or any negative value in the list.
func (c *Codec) decodeEnum(def schema.RawDef, enumName string, data []byte, path []string) (any, error) {
	if size, ok := def.Size(); ok && len(data) != size {
		return nil, errors.LengthMismatch(errors.PhaseDecode, path, size, len(data))
	}
	if len(data) > maxIntBytes {
		return nil, errors.Unsupported(errors.PhaseDecode,
			"enumerations wider than 8 bytes")
	}

	signed := enumIsSigned(def)
	var wire int64
	if signed {
		wire = bin.Int(data, c.order)
	} else {
		wire = int64(bin.Uint(data, c.order))
	}

	next := int64(0)
	for _, value := range def.List("values") {
		if v, ok := value.Int("value"); ok {
			next = v
		}
		if next == wire {
			if label, ok := value.String("label"); ok {
				return label, nil
			}
		}
		next++
	}
	return nil, errors.New(errors.PhaseDecode, errors.KindNoMatchingEnumValue).
		Path(path...).
		Detail("enumeration %q has no value %d", enumName, wire).
		Value(wire).
		Build()
}

// decodeGroup reads the tag at the group's declared width, locates the
// member declaring it, and hands the remaining bytes to that variant.
// A nonzero offset places the tag inside the payload instead of before it;
// the bytes around the tag are spliced back together for the variant.
func (c *Codec) decodeGroup(def schema.RawDef, groupName string, data []byte, path []string) (any, error) {
	size, ok := def.Size()
	if !ok {
		return nil, errors.RequiredFieldMissing("group", path, "size")
	}
	if size > maxIntBytes {
		return nil, errors.Unsupported(errors.PhaseDecode,
			"group tags wider than 8 bytes")
	}

	offset := 0
	if v, ok := def.Int("offset"); ok && v > 0 {
		offset = int(v)
		if c.warnings.Once(groupName) {
			c.log.Warn("group tag offsets are deprecated and will be removed",
				zap.String("group", groupName),
				zap.Int("offset", offset))
		}
	}

	if offset+size > len(data) {
		return nil, errors.LengthMismatch(errors.PhaseDecode, path,
			offset+size, len(data))
	}

	tag := bin.Uint(data[offset:offset+size], c.order)
	payload := data[:offset]
	payload = append(append([]byte{}, payload...), data[offset+size:]...)

	for name, variant := range c.defs.GroupVariants(groupName) {
		ref, _ := variant.GroupRef(groupName)
		if v, ok := ref.Int("value"); ok && uint64(v) == tag {
			return map[string]any{
				name: c.decodeBestEffort(payload, name, path),
			}, nil
		}
	}
	return nil, errors.New(errors.PhaseDecode, errors.KindNoMatchingVariant).
		Path(path...).
		Detail("no member of group %q declares tag %d", groupName, tag).
		Value(tag).
		Build()
}

// decodeBitField unpacks the container into an accumulator and slices each
// member out by shift and mask. Each member's bits are re-encoded at the
// width its type declares before recursing, so nested enums and defined
// types see the byte layout they expect.
func (c *Codec) decodeBitField(def schema.RawDef, data []byte, path []string) (any, error) {
	size, ok := def.Size()
	if !ok {
		return nil, errors.RequiredFieldMissing("bit_field", path, "size")
	}
	if len(data) != size {
		return nil, errors.LengthMismatch(errors.PhaseDecode, path, size, len(data))
	}
	if size > maxIntBytes {
		return nil, errors.Unsupported(errors.PhaseDecode,
			"bit fields wider than 8 bytes")
	}

	acc := bin.Uint(data, c.order)
	out := map[string]any{}
	for _, raw := range def.List("members") {
		partial, missing := schema.BitFieldMemberFromRaw(raw)
		if missing != "" {
			return nil, errors.RequiredFieldMissing("bit field member",
				appendPath(path, partial.Name), missing)
		}
		member, err := schema.ResolveBitRange(partial, size)
		if err != nil {
			return nil, errors.New(errors.PhaseDecode, errors.KindSizeMismatch).
				Path(appendPath(path, partial.Name)...).
				Detail("bit range does not fit the container").
				Cause(err).
				Build()
		}

		bits := acc >> member.Start & bin.Mask(member.Bits)
		if c.typeIsSigned(member.Type) {
			bits = uint64(bin.SignExtend(bits, member.Bits))
		}

		width := (member.Bits + 7) / 8
		if sub, ok := c.defs.Definition(member.Type); ok {
			if s, ok := sub.Size(); ok {
				width = s
			}
		}
		out[member.Name] = c.decodeBestEffort(
			bin.AppendUint(nil, bits, width, c.order), member.Type, path)
	}
	return out, nil
}

func (c *Codec) decodePrimitive(data []byte, typeTag string, path []string) (any, error) {
	switch typeTag {
	case "int":
		if len(data) > maxIntBytes {
			return nil, errors.Unsupported(errors.PhaseDecode, "integers wider than 8 bytes")
		}
		return bin.Int(data, c.order), nil
	case "uint":
		if len(data) > maxIntBytes {
			return nil, errors.Unsupported(errors.PhaseDecode, "integers wider than 8 bytes")
		}
		return bin.Uint(data, c.order), nil
	case "bool":
		for _, b := range data {
			if b != 0 {
				return true, nil
			}
		}
		return false, nil
	case "str":
		return strings.TrimRight(string(data), "\x00"), nil
	case "bytes", "reserved":
		return Opaque(bin.Dump(data)), nil
	}
	return nil, errors.New(errors.PhaseDecode, errors.KindInvalidType).
		Path(path...).
		Detail("type %q is not handled", typeTag).
		Build()
}

// typeIsSigned reports whether a bit-field member of the given type carries
// a two's-complement value needing sign extension after unpacking.
func (c *Codec) typeIsSigned(typeTag string) bool {
	if typeTag == "int" {
		return true
	}
	def, ok := c.defs.Definition(typeTag)
	if !ok || def.TypeTag() != "enum" {
		return false
	}
	return enumIsSigned(def)
}

func enumIsSigned(def schema.RawDef) bool {
	if signed, ok := def.Bool("signed"); ok {
		return signed
	}
	next := int64(0)
	for _, value := range def.List("values") {
		if v, ok := value.Int("value"); ok {
			next = v
		}
		if next < 0 {
			return true
		}
		next++
	}
	return false
}
