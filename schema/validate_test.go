package schema

import (
	"errors"
	"reflect"
	"testing"

	swerrors "github.com/structwire/structwire/errors"
)

func TestFromRaw(t *testing.T) {
	tests := []struct {
		name string
		raw  RawDefinitions
		want *TypeDefinitions
	}{
		{
			name: "empty structure",
			raw: RawDefinitions{
				"empty_struct": map[string]any{
					"description":  "An empty structure",
					"display_name": "Empty Structure",
					"type":         "structure",
					"size":         0,
				},
			},
			want: &TypeDefinitions{
				Definitions: map[string]Definition{
					"empty_struct": &Structure{
						Base: Base{
							Name:        "empty_struct",
							DisplayName: "Empty Structure",
							Description: "An empty structure",
							Size:        0,
						},
						Members: []StructureMember{},
					},
				},
			},
		},
		{
			name: "simple structure",
			raw: RawDefinitions{
				"simple_struct": map[string]any{
					"description":  "A simple structure",
					"display_name": "Simple Structure",
					"type":         "structure",
					"size":         1,
					"members": []any{
						map[string]any{
							"name":        "number",
							"size":        1,
							"type":        "int",
							"description": "A small number",
						},
					},
				},
			},
			want: &TypeDefinitions{
				Definitions: map[string]Definition{
					"simple_struct": &Structure{
						Base: Base{
							Name:        "simple_struct",
							DisplayName: "Simple Structure",
							Description: "A simple structure",
							Size:        1,
						},
						Members: []StructureMember{
							{Name: "number", Type: "int", Description: "A small number", Size: 1},
						},
					},
				},
			},
		},
		{
			name: "enum with explicit and derived values",
			raw: RawDefinitions{
				"an_enum": map[string]any{
					"description":  "an example enum",
					"display_name": "An Enum",
					"type":         "enum",
					"size":         1,
					"values": []any{
						map[string]any{
							"label":        "a",
							"value":        0,
							"display_name": "A",
							"description":  "The letter A",
						},
						map[string]any{
							"label":        "b",
							"display_name": "B",
							"description":  "The letter B",
						},
					},
				},
			},
			want: &TypeDefinitions{
				Definitions: map[string]Definition{
					"an_enum": &Enumeration{
						Base: Base{
							Name:        "an_enum",
							DisplayName: "An Enum",
							Description: "an example enum",
							Size:        1,
						},
						Values: []EnumValue{
							{Label: "a", Value: 0, DisplayName: "A", Description: "The letter A"},
							{Label: "b", Value: 1, DisplayName: "B", Description: "The letter B"},
						},
					},
				},
			},
		},
		{
			name: "signed enum inferred from negative value",
			raw: RawDefinitions{
				"signed_enum": map[string]any{
					"description":  "",
					"display_name": "",
					"type":         "enum",
					"size":         1,
					"values": []any{
						map[string]any{"label": "below", "value": -1},
						map[string]any{"label": "zero"},
						map[string]any{"label": "above"},
					},
				},
			},
			want: &TypeDefinitions{
				Definitions: map[string]Definition{
					"signed_enum": &Enumeration{
						Base:   Base{Name: "signed_enum", Size: 1},
						Signed: true,
						Values: []EnumValue{
							{Label: "below", Value: -1},
							{Label: "zero", Value: 0},
							{Label: "above", Value: 1},
						},
					},
				},
			},
		},
		{
			name: "empty bit field",
			raw: RawDefinitions{
				"a_bit_field": map[string]any{
					"description":  "An example bit field",
					"display_name": "A Bit Field",
					"type":         "bit_field",
					"size":         0,
				},
			},
			want: &TypeDefinitions{
				Definitions: map[string]Definition{
					"a_bit_field": &BitField{
						Base: Base{
							Name:        "a_bit_field",
							DisplayName: "A Bit Field",
							Description: "An example bit field",
							Size:        0,
						},
						Members: []BitFieldMember{},
					},
				},
			},
		},
		{
			name: "bit field with synthesized reserved tail",
			raw: RawDefinitions{
				"a_bit_field": map[string]any{
					"description":  "An example bit field",
					"display_name": "A Bit Field",
					"type":         "bit_field",
					"size":         1,
					"members": []any{
						map[string]any{
							"name":        "a_number",
							"start":       0,
							"bits":        4,
							"type":        "uint",
							"description": "A 4 bit number",
						},
					},
				},
			},
			want: &TypeDefinitions{
				Definitions: map[string]Definition{
					"a_bit_field": &BitField{
						Base: Base{
							Name:        "a_bit_field",
							DisplayName: "A Bit Field",
							Description: "An example bit field",
							Size:        1,
						},
						Members: []BitFieldMember{
							{Name: "a_number", Type: "uint", Description: "A 4 bit number", Start: 0, End: 3, Bits: 4},
							{Name: "reserved_4", Type: "reserved", Description: "Reserved", Start: 4, End: 7, Bits: 4},
						},
					},
				},
			},
		},
		{
			name: "bit field with synthesized gap",
			raw: RawDefinitions{
				"gappy": map[string]any{
					"description":  "",
					"display_name": "",
					"type":         "bit_field",
					"size":         1,
					"members": []any{
						map[string]any{"name": "low", "start": 0, "type": "uint"},
						map[string]any{"name": "high", "start": 6, "end": 7, "type": "uint"},
					},
				},
			},
			want: &TypeDefinitions{
				Definitions: map[string]Definition{
					"gappy": &BitField{
						Base: Base{Name: "gappy", Size: 1},
						Members: []BitFieldMember{
							{Name: "low", Type: "uint", Start: 0, End: 0, Bits: 1},
							{Name: "reserved_1", Type: "reserved", Description: "Reserved", Start: 1, End: 5, Bits: 5},
							{Name: "high", Type: "uint", Start: 6, End: 7, Bits: 2},
						},
					},
				},
			},
		},
		{
			name: "grouped structures",
			raw: RawDefinitions{
				"small_group": map[string]any{
					"description":  "A Small Example Group",
					"display_name": "Small Group",
					"type":         "group",
					"size":         1,
				},
				"simple_struct": map[string]any{
					"description":  "A simple structure",
					"display_name": "Simple Structure",
					"type":         "structure",
					"size":         1,
					"members": []any{
						map[string]any{
							"name":        "number",
							"size":        1,
							"type":        "int",
							"description": "A small number",
						},
					},
					"groups": map[string]any{
						"small_group": map[string]any{"value": 1, "name": "simple"},
					},
				},
			},
			want: &TypeDefinitions{
				Definitions: map[string]Definition{
					"small_group": &Group{
						Base: Base{
							Name:        "small_group",
							DisplayName: "Small Group",
							Description: "A Small Example Group",
							Size:        1,
						},
						Members: []GroupMember{
							{Name: "simple", Type: "simple_struct", Value: 1},
						},
					},
					"simple_struct": &Structure{
						Base: Base{
							Name:        "simple_struct",
							DisplayName: "Simple Structure",
							Description: "A simple structure",
							Size:        1,
						},
						Members: []StructureMember{
							{Name: "number", Type: "int", Description: "A small number", Size: 1},
						},
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromRaw(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestFromRawFileDescription(t *testing.T) {
	raw := RawDefinitions{
		"file": map[string]any{
			"brief":       "Command set for a thermostat",
			"description": "Provides basic debug commands for a thermostat.",
		},
	}
	got, err := FromRaw(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := FileDescription{
		Brief:       "Command set for a thermostat",
		Description: "Provides basic debug commands for a thermostat.",
	}
	if got.File != want {
		t.Errorf("file description: got %+v, want %+v", got.File, want)
	}
	if len(got.Definitions) != 0 {
		t.Errorf("file record must not become a definition, got %d definitions", len(got.Definitions))
	}
}

func TestFromRawErrors(t *testing.T) {
	tests := []struct {
		name     string
		raw      RawDefinitions
		wantKind swerrors.Kind
		wantPath string
	}{
		{
			name: "structure size mismatch",
			raw: RawDefinitions{
				"simple_struct": map[string]any{
					"description":  "A simple structure",
					"display_name": "Simple Structure",
					"type":         "structure",
					"size":         0,
					"members": []any{
						map[string]any{
							"name":        "number",
							"size":        1,
							"type":        "int",
							"description": "A small number",
						},
					},
				},
			},
			wantKind: swerrors.KindSizeMismatch,
			wantPath: "simple_struct",
		},
		{
			name: "missing display name",
			raw: RawDefinitions{
				"nameless": map[string]any{
					"description": "",
					"type":        "structure",
					"size":        0,
				},
			},
			wantKind: swerrors.KindFieldMissing,
			wantPath: "nameless",
		},
		{
			name: "missing member type",
			raw: RawDefinitions{
				"a_struct": map[string]any{
					"description":  "",
					"display_name": "",
					"type":         "structure",
					"size":         1,
					"members": []any{
						map[string]any{"name": "number", "size": 1, "description": ""},
					},
				},
			},
			wantKind: swerrors.KindFieldMissing,
			wantPath: "a_struct::number",
		},
		{
			name: "unknown type tag",
			raw: RawDefinitions{
				"weird": map[string]any{
					"description":  "",
					"display_name": "",
					"type":         "tuple",
					"size":         1,
				},
			},
			wantKind: swerrors.KindInvalidType,
			wantPath: "weird",
		},
		{
			name: "enum too wide for declared size",
			raw: RawDefinitions{
				"wide_enum": map[string]any{
					"description":  "",
					"display_name": "",
					"type":         "enum",
					"size":         1,
					"values": []any{
						map[string]any{"label": "low", "value": 0},
						map[string]any{"label": "high", "value": 256},
					},
				},
			},
			wantKind: swerrors.KindSizeMismatch,
			wantPath: "wide_enum",
		},
		{
			name: "bit field member beyond container",
			raw: RawDefinitions{
				"overflowing": map[string]any{
					"description":  "",
					"display_name": "",
					"type":         "bit_field",
					"size":         1,
					"members": []any{
						map[string]any{"name": "too_far", "start": 8, "bits": 4, "type": "uint"},
					},
				},
			},
			wantKind: swerrors.KindSizeMismatch,
			wantPath: "overflowing::too_far",
		},
		{
			name: "overlapping bit field members",
			raw: RawDefinitions{
				"overlapping": map[string]any{
					"description":  "",
					"display_name": "",
					"type":         "bit_field",
					"size":         1,
					"members": []any{
						map[string]any{"name": "a", "start": 0, "bits": 4, "type": "uint"},
						map[string]any{"name": "b", "start": 2, "bits": 4, "type": "uint"},
					},
				},
			},
			wantKind: swerrors.KindInvalidData,
			wantPath: "overlapping::b",
		},
		{
			name: "group reference without value",
			raw: RawDefinitions{
				"a_group": map[string]any{
					"description":  "",
					"display_name": "",
					"type":         "group",
					"size":         1,
				},
				"member_struct": map[string]any{
					"description":  "",
					"display_name": "",
					"type":         "structure",
					"size":         0,
					"groups": map[string]any{
						"a_group": map[string]any{"name": "member"},
					},
				},
			},
			wantKind: swerrors.KindFieldMissing,
			wantPath: "member_struct::groups::a_group",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromRaw(tt.raw)
			if err == nil {
				t.Fatal("expected an error")
			}
			want := &swerrors.Error{Phase: swerrors.PhaseValidate, Kind: tt.wantKind}
			if !errors.Is(err, want) {
				t.Fatalf("got %v, want kind %s", err, tt.wantKind)
			}
			var se *swerrors.Error
			if !errors.As(err, &se) {
				t.Fatalf("expected a structured error, got %T", err)
			}
			if se.ContextPath() != tt.wantPath {
				t.Errorf("path: got %q, want %q", se.ContextPath(), tt.wantPath)
			}
		})
	}
}

func TestTypeDefinitionsNames(t *testing.T) {
	td := &TypeDefinitions{Definitions: map[string]Definition{
		"zeta":  &Structure{},
		"alpha": &Structure{},
		"mid":   &Structure{},
	}}
	want := []string{"alpha", "mid", "zeta"}
	if got := td.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
