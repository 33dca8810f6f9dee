package codec

import (
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/structwire/structwire/codec/internal/bin"
	"github.com/structwire/structwire/errors"
	"github.com/structwire/structwire/schema"
)

// Encode serializes a value tree to its exact byte layout. The tree is a
// single-key map from a definition (or primitive type) name to its payload.
// Unlike Decode, every failure is fatal: a value that cannot be encoded
// byte-exactly is a caller error.
func (c *Codec) Encode(value map[string]any) ([]byte, error) {
	name, payload, ok := singleKey(value)
	if !ok {
		return nil, errors.InvalidData(errors.PhaseEncode, nil,
			"value tree must be a single-key map of definition name to payload")
	}
	return c.encodeElement(name, payload, nil)
}

func (c *Codec) encodeElement(name string, payload any, path []string) ([]byte, error) {
	path = appendPath(path, name)

	def, ok := c.defs.Definition(name)
	if !ok {
		// Not a definition: a bare primitive carrying its own size,
		// e.g. {"uint": {"value": 5, "size": 3}}.
		m, err := cast.ToStringMapE(payload)
		if err != nil {
			return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(path...).
				Detail("primitive payload must be a map with value and size").
				Cause(err).
				Build()
		}
		size, err := cast.ToIntE(m["size"])
		if err != nil {
			return nil, errors.New(errors.PhaseEncode, errors.KindFieldMissing).
				Path(path...).
				Detail("primitive payload requires an integer size").
				Cause(err).
				Build()
		}
		return c.encodePrimitive(name, m["value"], size, path)
	}

	switch tag := def.TypeTag(); tag {
	case "group":
		return c.encodeGroup(def, name, payload, path)
	case "structure":
		return c.encodeStructure(def, payload, path)
	case "enum":
		return c.encodeEnum(def, name, payload, path)
	case "bit_field":
		return c.encodeBitField(def, payload, path)
	default:
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidType).
			Path(path...).
			Detail("type %q is not one of structure, enum, bit_field, group", tag).
			Build()
	}
}

// encodeGroup emits the chosen variant's tag at the group's declared width,
// then the variant itself.
func (c *Codec) encodeGroup(def schema.RawDef, groupName string, payload any, path []string) ([]byte, error) {
	m, err := cast.ToStringMapE(payload)
	if err != nil {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Path(path...).
			Detail("group payload must be a single-key map of variant name to value").
			Cause(err).
			Build()
	}
	variantName, inner, ok := singleKey(m)
	if !ok {
		return nil, errors.InvalidData(errors.PhaseEncode, path,
			"group payload must name exactly one variant")
	}

	variant, ok := c.defs.GroupVariants(groupName)[variantName]
	if !ok {
		return nil, errors.New(errors.PhaseEncode, errors.KindNoMatchingVariant).
			Path(path...).
			Detail("%q does not declare membership in group %q", variantName, groupName).
			Value(variantName).
			Build()
	}
	ref, _ := variant.GroupRef(groupName)
	tag, ok := ref.Int("value")
	if !ok {
		return nil, errors.RequiredFieldMissing("group reference",
			append(path, variantName), "value")
	}

	size, ok := def.Size()
	if !ok {
		return nil, errors.RequiredFieldMissing("group", path, "size")
	}
	if size > maxIntBytes {
		return nil, errors.Unsupported(errors.PhaseEncode,
			"group tags wider than 8 bytes")
	}
	if !bin.FitsUint(uint64(tag), size) {
		return nil, errors.Overflow(errors.PhaseEncode, path, tag, size)
	}

	out := bin.AppendUint(nil, uint64(tag), size, c.order)
	body, err := c.encodeElement(variantName, inner, path)
	if err != nil {
		return nil, err
	}
	return append(out, body...), nil
}

func (c *Codec) encodeStructure(def schema.RawDef, payload any, path []string) ([]byte, error) {
	fields := map[string]any{}
	if payload != nil {
		m, err := cast.ToStringMapE(payload)
		if err != nil {
			return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(path...).
				Detail("structure payload must be a map of member name to value").
				Cause(err).
				Build()
		}
		fields = m
	}

	var out []byte
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

		value, ok := fields[name]
		if !ok {
			return nil, errors.New(errors.PhaseEncode, errors.KindFieldMissing).
				Path(memberPath...).
				Detail("no value for member %q", name).
				Build()
		}

		var b []byte
		var err error
		if _, isDef := c.defs.Definition(typ); isDef {
			b, err = c.encodeElement(typ, value, path)
		} else {
			b, err = c.encodePrimitive(typ, value, int(size), memberPath)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// encodeEnum re-derives omitted ordinals the same way the validator does,
// then emits the matched value two's complement at the declared width so
// signed enumerations survive bit-field packing.
func (c *Codec) encodeEnum(def schema.RawDef, enumName string, payload any, path []string) ([]byte, error) {
	label, err := cast.ToStringE(payload)
	if err != nil {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Path(path...).
			Detail("enum payload must be a label string").
			Cause(err).
			Build()
	}
	size, ok := def.Size()
	if !ok {
		return nil, errors.RequiredFieldMissing("enum", path, "size")
	}
	if size > maxIntBytes {
		return nil, errors.Unsupported(errors.PhaseEncode,
			"enumerations wider than 8 bytes")
	}

	next := int64(0)
	matched := false
	var matchValue int64
	signed, _ := def.Bool("signed")
	for _, value := range def.List("values") {
		if v, ok := value.Int("value"); ok {
			next = v
		}
		if next < 0 {
			signed = true
		}
		if l, ok := value.String("label"); ok && l == label {
			matched = true
			matchValue = next
		}
		next++
	}
	if !matched {
		return nil, errors.New(errors.PhaseEncode, errors.KindNoMatchingEnumValue).
			Path(path...).
			Detail("enumeration %q has no label %q", enumName, label).
			Value(label).
			Build()
	}

	fits := bin.FitsUint(uint64(matchValue), size)
	if signed {
		fits = bin.FitsInt(matchValue, size)
	}
	if !fits {
		return nil, errors.Overflow(errors.PhaseEncode, path, matchValue, size)
	}
	return bin.AppendUint(nil, uint64(matchValue), size, c.order), nil
}

// encodeBitField packs each member into an accumulator: the sub-value is
// encoded to bytes, reinterpreted unsigned, masked to its bit count, and
// shifted to its start bit. Reserved ranges take the configured fill.
func (c *Codec) encodeBitField(def schema.RawDef, payload any, path []string) ([]byte, error) {
	size, ok := def.Size()
	if !ok {
		return nil, errors.RequiredFieldMissing("bit_field", path, "size")
	}
	if size > maxIntBytes {
		return nil, errors.Unsupported(errors.PhaseEncode,
			"bit fields wider than 8 bytes")
	}

	fields := map[string]any{}
	if payload != nil {
		m, err := cast.ToStringMapE(payload)
		if err != nil {
			return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(path...).
				Detail("bit field payload must be a map of member name to value").
				Cause(err).
				Build()
		}
		fields = m
	}

	var acc uint64
	for _, raw := range def.List("members") {
		partial, missing := schema.BitFieldMemberFromRaw(raw)
		if missing != "" {
			return nil, errors.RequiredFieldMissing("bit field member",
				appendPath(path, partial.Name), missing)
		}
		member, err := schema.ResolveBitRange(partial, size)
		if err != nil {
			return nil, errors.New(errors.PhaseEncode, errors.KindSizeMismatch).
				Path(appendPath(path, partial.Name)...).
				Detail("bit range does not fit the container").
				Cause(err).
				Build()
		}
		memberPath := appendPath(path, member.Name)

		var sub []byte
		if member.Type == "reserved" {
			sub = bin.Fill((member.Bits+7)/8, c.reservedFill)
		} else {
			value, ok := fields[member.Name]
			if !ok {
				return nil, errors.New(errors.PhaseEncode, errors.KindFieldMissing).
					Path(memberPath...).
					Detail("no value for member %q", member.Name).
					Build()
			}
			if _, isDef := c.defs.Definition(member.Type); isDef {
				sub, err = c.encodeElement(member.Type, value, path)
			} else {
				sub, err = c.encodePrimitive(member.Type, value, (member.Bits+7)/8, memberPath)
			}
			if err != nil {
				return nil, err
			}
		}
		if len(sub) > maxIntBytes {
			return nil, errors.Unsupported(errors.PhaseEncode,
				"bit field members wider than 8 bytes")
		}
		acc |= (bin.Uint(sub, c.order) & bin.Mask(member.Bits)) << member.Start
	}

	return bin.AppendUint(nil, acc, size, c.order), nil
}

func (c *Codec) encodePrimitive(typeTag string, value any, size int, path []string) ([]byte, error) {
	switch typeTag {
	case "int":
		v, err := cast.ToInt64E(value)
		if err != nil {
			return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(path...).Detail("expected an integer").Cause(err).Build()
		}
		if size > maxIntBytes {
			return nil, errors.Unsupported(errors.PhaseEncode, "integers wider than 8 bytes")
		}
		if !bin.FitsInt(v, size) {
			return nil, errors.Overflow(errors.PhaseEncode, path, v, size)
		}
		return bin.AppendUint(nil, uint64(v), size, c.order), nil

	case "uint":
		v, err := cast.ToUint64E(value)
		if err != nil {
			return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(path...).Detail("expected an unsigned integer").Cause(err).Build()
		}
		if size > maxIntBytes {
			return nil, errors.Unsupported(errors.PhaseEncode, "integers wider than 8 bytes")
		}
		if !bin.FitsUint(v, size) {
			return nil, errors.Overflow(errors.PhaseEncode, path, v, size)
		}
		return bin.AppendUint(nil, v, size, c.order), nil

	case "bool":
		v, err := cast.ToBoolE(value)
		if err != nil {
			return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(path...).Detail("expected a boolean").Cause(err).Build()
		}
		var n uint64
		if v {
			n = 1
		}
		return bin.AppendUint(nil, n, size, c.order), nil

	case "bytes":
		var b []byte
		switch v := value.(type) {
		case []byte:
			b = v
		case string:
			b = []byte(v)
		default:
			return nil, errors.InvalidData(errors.PhaseEncode, path,
				"expected a byte slice")
		}
		if len(b) != size {
			return nil, errors.LengthMismatch(errors.PhaseEncode, path, size, len(b))
		}
		return b, nil

	case "str":
		s, err := cast.ToStringE(value)
		if err != nil {
			return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(path...).Detail("expected a string").Cause(err).Build()
		}
		b := []byte(s)
		if len(b) > size {
			b = b[:size]
			c.log.Warn("truncating string to declared size",
				zap.String("path", joinPath(path)),
				zap.Int("size", size),
				zap.ByteString("truncated", b))
			return b, nil
		}
		return append(b, bin.Fill(size-len(b), 0x00)...), nil

	case "reserved":
		return bin.Fill(size, c.reservedFill), nil
	}

	return nil, errors.New(errors.PhaseEncode, errors.KindInvalidType).
		Path(path...).
		Detail("type %q is not handled", typeTag).
		Build()
}
