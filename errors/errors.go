package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseValidate Phase = "validate" // schema validation
	PhaseEncode   Phase = "encode"   // value tree to bytes
	PhaseDecode   Phase = "decode"   // bytes to value tree
	PhaseLoad     Phase = "load"     // schema file loading
)

// Kind categorizes the error
type Kind string

const (
	KindFieldMissing        Kind = "field_missing"
	KindInvalidType         Kind = "invalid_type"
	KindSizeMismatch        Kind = "size_mismatch"
	KindLengthMismatch      Kind = "length_mismatch"
	KindNoMatchingVariant   Kind = "no_matching_variant"
	KindNoMatchingEnumValue Kind = "no_matching_enum_value"
	KindOverflow            Kind = "overflow"
	KindInvalidData         Kind = "invalid_data"
	KindUnsupported         Kind = "unsupported"
)

// Error is the structured error type used throughout the module. Path carries
// the chain of definition and member names leading to the failure, so a
// nested schema problem can be located without re-deriving it.
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "::"))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// ContextPath returns the failure location as a "::"-joined string.
func (e *Error) ContextPath() string {
	return strings.Join(e.Path, "::")
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the definition path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// RequiredFieldMissing reports a definition or member lacking a required key.
func RequiredFieldMissing(kind string, path []string, field string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("%s requires field %q", kind, field),
	}
}

// InvalidType reports an unknown definition type tag.
func InvalidType(path []string, given string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindInvalidType,
		Path:   path,
		Detail: fmt.Sprintf("type %q is not one of structure, enum, bit_field, group", given),
		Value:  given,
	}
}

// SizeMismatch reports disagreement between a declared size and the size
// measured from a definition's members or values.
func SizeMismatch(path []string, expected, measured int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindSizeMismatch,
		Path:   path,
		Detail: fmt.Sprintf("declared size %d, measured %d", expected, measured),
	}
}

// LengthMismatch reports a byte buffer whose length disagrees with a
// declared size.
func LengthMismatch(phase Phase, path []string, expected, got int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindLengthMismatch,
		Path:   path,
		Detail: fmt.Sprintf("expected %d bytes, got %d", expected, got),
	}
}

// NoMatchingVariant reports a group tag with no member declaring it.
func NoMatchingVariant(phase Phase, group string, tag uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNoMatchingVariant,
		Path:   []string{group},
		Detail: fmt.Sprintf("no member of group %q declares tag %d", group, tag),
		Value:  tag,
	}
}

// NoMatchingEnumValue reports an enum label or integer absent from an
// enumeration's value list.
func NoMatchingEnumValue(phase Phase, enum string, value any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNoMatchingEnumValue,
		Path:   []string{enum},
		Detail: fmt.Sprintf("enumeration %q has no value %v", enum, value),
		Value:  value,
	}
}

// Overflow reports a value that does not fit its declared width.
func Overflow(phase Phase, path []string, value any, size int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Detail: fmt.Sprintf("value %v does not fit in %d bytes", value, size),
		Value:  value,
	}
}

// InvalidData reports malformed input data.
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Unsupported reports an operation outside the codec's limits.
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
