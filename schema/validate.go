package schema

import (
	"sort"
	"strconv"

	"github.com/structwire/structwire/errors"
)

// FromRaw validates a raw schema tree and produces TypeDefinitions.
// Omitted enum ordinals and bit-field ranges are derived; bit coverage gaps
// are filled with synthesized reserved members. Validation aborts on the
// first inconsistency with an error naming the offending definition path.
func FromRaw(raw RawDefinitions) (*TypeDefinitions, error) {
	td := &TypeDefinitions{Definitions: make(map[string]Definition, len(raw))}

	for _, name := range raw.Names() {
		def, ok := raw.Definition(name)
		if !ok {
			return nil, errors.InvalidData(errors.PhaseValidate, []string{name},
				"definition is not a key-value map")
		}

		tag, ok := def.String("type")
		if !ok {
			return nil, errors.RequiredFieldMissing("definition", []string{name}, "type")
		}
		kind, ok := KindFromString(tag)
		if !ok {
			return nil, errors.InvalidType([]string{name}, tag)
		}

		base, err := baseFromRaw(name, kind, def)
		if err != nil {
			return nil, err
		}

		var validated Definition
		switch kind {
		case KindStructure:
			validated, err = structureFromRaw(base, def)
		case KindEnum:
			validated, err = enumFromRaw(base, def)
		case KindBitField:
			validated, err = bitFieldFromRaw(base, def)
		case KindGroup:
			validated, err = groupFromRaw(base, def, raw)
		}
		if err != nil {
			return nil, err
		}
		td.Definitions[name] = validated
	}

	if file, ok := raw.Definition(FileKey); ok {
		td.File.Brief, _ = file.String("brief")
		td.File.Description, _ = file.String("description")
	}

	return td, nil
}

func baseFromRaw(name string, kind Kind, def RawDef) (Base, error) {
	displayName, ok := def.String("display_name")
	if !ok {
		return Base{}, errors.RequiredFieldMissing(kind.String(), []string{name}, "display_name")
	}
	description, ok := def.String("description")
	if !ok {
		return Base{}, errors.RequiredFieldMissing(kind.String(), []string{name}, "description")
	}
	size, ok := def.Size()
	if !ok {
		return Base{}, errors.RequiredFieldMissing(kind.String(), []string{name}, "size")
	}
	return Base{
		Name:        name,
		DisplayName: displayName,
		Description: description,
		Size:        size,
	}, nil
}

func structureFromRaw(base Base, def RawDef) (*Structure, error) {
	s := &Structure{Base: base, Members: []StructureMember{}}

	measured := 0
	for _, raw := range def.List("members") {
		name, ok := raw.String("name")
		if !ok {
			return nil, errors.RequiredFieldMissing("structure member", []string{base.Name}, "name")
		}
		path := []string{base.Name, name}
		typ, ok := raw.String("type")
		if !ok {
			return nil, errors.RequiredFieldMissing("structure member", path, "type")
		}
		size, ok := raw.Int("size")
		if !ok {
			return nil, errors.RequiredFieldMissing("structure member", path, "size")
		}
		description, ok := raw.String("description")
		if !ok {
			return nil, errors.RequiredFieldMissing("structure member", path, "description")
		}
		s.Members = append(s.Members, StructureMember{
			Name:        name,
			Type:        typ,
			Description: description,
			Size:        int(size),
		})
		measured += int(size)
	}

	// Unlike bit fields, structures do not gap-fill: any disagreement
	// between the declared size and the member sum is a hard error.
	if measured != base.Size {
		return nil, errors.SizeMismatch([]string{base.Name}, base.Size, measured)
	}
	return s, nil
}

func enumFromRaw(base Base, def RawDef) (*Enumeration, error) {
	e := &Enumeration{Base: base, Values: []EnumValue{}}

	next := int64(0)
	for _, raw := range def.List("values") {
		label, ok := raw.String("label")
		if !ok {
			return nil, errors.RequiredFieldMissing("enum value", []string{base.Name}, "label")
		}
		if v, ok := raw.Int("value"); ok {
			next = v
		}
		displayName, _ := raw.String("display_name")
		description, _ := raw.String("description")
		e.Values = append(e.Values, EnumValue{
			Label:       label,
			DisplayName: displayName,
			Description: description,
			Value:       next,
		})
		next++
	}

	e.Signed = anyNegative(e.Values)
	if explicit, ok := def.Bool("signed"); ok {
		e.Signed = e.Signed || explicit
	}

	ints := make([]int64, len(e.Values))
	for i, v := range e.Values {
		ints[i] = v.Value
	}
	// Padding is allowed: the declared size may exceed the minimal width.
	if required := EnumBytes(ints, e.Signed); required > base.Size {
		return nil, errors.SizeMismatch([]string{base.Name}, base.Size, required)
	}
	return e, nil
}

func anyNegative(values []EnumValue) bool {
	for _, v := range values {
		if v.Value < 0 {
			return true
		}
	}
	return false
}

// BitFieldMemberFromRaw builds a partially specified bit-field member from
// its raw map, leaving absent bits and end fields as RangeUnset for
// ResolveBitRange. The returned string names the first missing required
// field, or is empty when the member is complete.
func BitFieldMemberFromRaw(raw RawDef) (BitFieldMember, string) {
	m := BitFieldMember{Bits: RangeUnset, End: RangeUnset}

	name, ok := raw.String("name")
	if !ok {
		return m, "name"
	}
	m.Name = name
	typ, ok := raw.String("type")
	if !ok {
		return m, "type"
	}
	m.Type = typ
	start, ok := raw.Int("start")
	if !ok {
		return m, "start"
	}
	m.Start = int(start)
	m.Description, _ = raw.String("description")

	if bits, ok := raw.Int("bits"); ok {
		m.Bits = int(bits)
	}
	if end, ok := raw.Int("end"); ok {
		m.End = int(end)
	} else if last, ok := raw.Int("last"); ok {
		m.End = int(last)
	}
	return m, ""
}

func bitFieldFromRaw(base Base, def RawDef) (*BitField, error) {
	bf := &BitField{Base: base, Members: []BitFieldMember{}}

	cursor := 0
	for _, raw := range def.List("members") {
		member, missing := BitFieldMemberFromRaw(raw)
		if missing != "" {
			path := []string{base.Name}
			if member.Name != "" {
				path = append(path, member.Name)
			}
			return nil, errors.RequiredFieldMissing("bit field member", path, missing)
		}

		member, err := ResolveBitRange(member, base.Size)
		if err != nil {
			if e, ok := err.(*errors.Error); ok {
				e.Path = append([]string{base.Name}, e.Path...)
			}
			return nil, err
		}

		if member.Start < cursor {
			return nil, errors.New(errors.PhaseValidate, errors.KindInvalidData).
				Path(base.Name, member.Name).
				Detail("bit range [%d, %d] overlaps the previous member", member.Start, member.End).
				Build()
		}
		if member.Start > cursor {
			bf.Members = append(bf.Members, reservedBits(cursor, member.Start-1))
		}
		bf.Members = append(bf.Members, member)
		cursor = member.End + 1
	}

	if cursor < base.Size*8 {
		bf.Members = append(bf.Members, reservedBits(cursor, base.Size*8-1))
	}
	return bf, nil
}

// reservedBits synthesizes a reserved member covering [start, end].
func reservedBits(start, end int) BitFieldMember {
	return BitFieldMember{
		Name:        "reserved_" + strconv.Itoa(start),
		Type:        "reserved",
		Description: "Reserved",
		Start:       start,
		End:         end,
		Bits:        end - start + 1,
	}
}

func groupFromRaw(base Base, def RawDef, raw RawDefinitions) (*Group, error) {
	g := &Group{Base: base, Members: []GroupMember{}}
	if offset, ok := def.Int("offset"); ok {
		g.Offset = int(offset)
	}

	for name, variant := range raw.GroupVariants(base.Name) {
		ref, _ := variant.GroupRef(base.Name)
		value, ok := ref.Int("value")
		if !ok {
			return nil, errors.RequiredFieldMissing("group reference",
				[]string{name, "groups", base.Name}, "value")
		}
		label, ok := ref.String("name")
		if !ok {
			return nil, errors.RequiredFieldMissing("group reference",
				[]string{name, "groups", base.Name}, "name")
		}
		g.Members = append(g.Members, GroupMember{
			Name:  label,
			Type:  name,
			Value: value,
		})
	}

	sort.Slice(g.Members, func(i, j int) bool {
		return g.Members[i].Value < g.Members[j].Value
	})
	return g, nil
}
