package schema

import (
	"sort"

	"github.com/spf13/cast"
)

// FileKey is the reserved top-level key holding the document metadata.
const FileKey = "file"

// RawDefinitions is the unvalidated name-to-definition view of a schema
// document, as produced by package schemafile. The codec operates directly
// on this view so that byte streams can be inspected even against schemas
// that would not pass validation.
type RawDefinitions map[string]any

// Definition returns the raw definition with the given name.
func (r RawDefinitions) Definition(name string) (RawDef, bool) {
	v, ok := r[name]
	if !ok {
		return nil, false
	}
	m, err := cast.ToStringMapE(v)
	if err != nil {
		return nil, false
	}
	return RawDef(m), true
}

// Names returns the definition names in sorted order, excluding the file
// metadata record.
func (r RawDefinitions) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		if name == FileKey {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GroupVariants returns every definition declaring membership in the named
// group, keyed by definition name. The group's member list is derived from
// these back-references rather than declared on the group itself.
func (r RawDefinitions) GroupVariants(group string) map[string]RawDef {
	variants := make(map[string]RawDef)
	for name := range r {
		if name == FileKey {
			continue
		}
		def, ok := r.Definition(name)
		if !ok {
			continue
		}
		if _, ok := def.GroupRef(group); ok {
			variants[name] = def
		}
	}
	return variants
}

// RawDef is a single unvalidated definition or member map. Accessors coerce
// values loosely, since TOML, JSON, and YAML loaders disagree on numeric
// types.
type RawDef map[string]any

// TypeTag returns the definition's declared type tag, or "" when absent.
func (d RawDef) TypeTag() string {
	s, _ := d.String("type")
	return s
}

// Kind parses the type tag into a Kind.
func (d RawDef) Kind() (Kind, bool) {
	return KindFromString(d.TypeTag())
}

// Size returns the declared byte width.
func (d RawDef) Size() (int, bool) {
	v, ok := d.Int("size")
	return int(v), ok
}

// String returns the string value at key.
func (d RawDef) String(key string) (string, bool) {
	v, ok := d[key]
	if !ok {
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, true
}

// Int returns the integer value at key.
func (d RawDef) Int(key string) (int64, bool) {
	v, ok := d[key]
	if !ok {
		return 0, false
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Bool returns the boolean value at key.
func (d RawDef) Bool(key string) (bool, bool) {
	v, ok := d[key]
	if !ok {
		return false, false
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// List returns the ordered member or value maps at key. Absent or malformed
// lists yield nil.
func (d RawDef) List(key string) []RawDef {
	v, ok := d[key]
	if !ok {
		return nil
	}
	items, err := cast.ToSliceE(v)
	if err != nil {
		return nil
	}
	out := make([]RawDef, 0, len(items))
	for _, item := range items {
		m, err := cast.ToStringMapE(item)
		if err != nil {
			continue
		}
		out = append(out, RawDef(m))
	}
	return out
}

// GroupRef returns this definition's back-reference into the named group,
// i.e. the {value, name} map under its groups key.
func (d RawDef) GroupRef(group string) (RawDef, bool) {
	v, ok := d["groups"]
	if !ok {
		return nil, false
	}
	groups, err := cast.ToStringMapE(v)
	if err != nil {
		return nil, false
	}
	ref, ok := groups[group]
	if !ok {
		return nil, false
	}
	m, err := cast.ToStringMapE(ref)
	if err != nil {
		return nil, false
	}
	return RawDef(m), true
}
