package schema

import "sort"

// Kind identifies a definition kind.
type Kind uint8

const (
	KindStructure Kind = iota
	KindEnum
	KindBitField
	KindGroup
)

var kindNames = [...]string{
	KindStructure: "structure",
	KindEnum:      "enum",
	KindBitField:  "bit_field",
	KindGroup:     "group",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// KindFromString parses a definition's type tag.
func KindFromString(s string) (Kind, bool) {
	for k, name := range kindNames {
		if s == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Base is the shape shared by every definition kind.
type Base struct {
	Name        string
	DisplayName string
	Description string
	Size        int // declared byte width
}

// Meta returns the shared definition fields.
func (b Base) Meta() Base { return b }

// Definition is a validated schema definition. Concrete types are
// *Structure, *Enumeration, *BitField, and *Group.
type Definition interface {
	Meta() Base
	Kind() Kind
}

// FileDescription is the schema document's metadata record. It is not a
// wire type.
type FileDescription struct {
	Brief       string
	Description string
}

// StructureMember is one named, sized field of a structure.
type StructureMember struct {
	Name        string
	Type        string // primitive tag or another definition's name
	Description string
	Size        int
}

// Structure is a fixed-size sequential record. Its declared size equals the
// sum of its member sizes exactly; a structure may have zero members.
type Structure struct {
	Base
	Members []StructureMember
}

func (*Structure) Kind() Kind { return KindStructure }

// EnumValue is one named integer of an enumeration. Value is always
// populated after validation, including derived ordinals.
type EnumValue struct {
	Label       string
	DisplayName string
	Description string
	Value       int64
}

// Enumeration is a closed set of named integer values. Signed is true when
// any value is negative or the definition carries an explicit signed flag.
type Enumeration struct {
	Base
	Signed bool
	Values []EnumValue
}

func (*Enumeration) Kind() Kind { return KindEnum }

// BitFieldMember is one named bit range of a bit field. After validation
// Start, End, and Bits are all populated with End inclusive, so
// End == Start + Bits - 1.
type BitFieldMember struct {
	Name        string
	Type        string
	Description string
	Start       int
	End         int
	Bits        int
}

// BitField is a container whose bits are subdivided into named sub-fields.
// Uncovered ranges are filled with synthesized reserved members during
// validation, so the members always cover [0, Size*8) exactly.
type BitField struct {
	Base
	Members []BitFieldMember
}

func (*BitField) Kind() Kind { return KindBitField }

// GroupMember is one variant of a tagged union, derived from the
// back-reference declared on the member's own definition.
type GroupMember struct {
	Name  string // variant label from the back-reference
	Type  string // name of the member definition
	Value int64  // tag
}

// Group is a tagged union. Size is the tag's byte width. Offset is the
// deprecated legacy tag byte index; zero means the tag is a prefix.
type Group struct {
	Base
	Offset  int
	Members []GroupMember
}

func (*Group) Kind() Kind { return KindGroup }

// TypeDefinitions is the validated aggregate: the file metadata plus a
// name-keyed definition map. It is immutable after construction.
type TypeDefinitions struct {
	File        FileDescription
	Definitions map[string]Definition
}

// Names returns the definition names in sorted order.
func (t *TypeDefinitions) Names() []string {
	names := make([]string, 0, len(t.Definitions))
	for name := range t.Definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
