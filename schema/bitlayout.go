package schema

import "github.com/structwire/structwire/errors"

// RangeUnset marks Bits or End as not given on a partially specified
// bit-field member handed to ResolveBitRange.
const RangeUnset = -1

// ResolveBitRange completes a partially specified bit-field member so that
// Start, End, and Bits are all populated and mutually consistent, with End
// inclusive (End == Start + Bits - 1). Bits and End may be RangeUnset; when
// both are, the member occupies a single bit. The member must fit inside a
// container of containerSize bytes.
//
// This derivation runs during validation and again on every bit-field
// member the codec packs or unpacks, since the codec also accepts raw,
// unvalidated schemas.
func ResolveBitRange(m BitFieldMember, containerSize int) (BitFieldMember, error) {
	if m.Start < 0 {
		return m, errors.InvalidData(errors.PhaseValidate, []string{m.Name},
			"bit range start must not be negative")
	}

	switch {
	case m.Bits == RangeUnset && m.End == RangeUnset:
		m.Bits = 1
		m.End = m.Start
	case m.End == RangeUnset:
		if m.Bits < 1 {
			return m, errors.InvalidData(errors.PhaseValidate, []string{m.Name},
				"bit range needs at least one bit")
		}
		m.End = m.Start + m.Bits - 1
	case m.Bits == RangeUnset:
		if m.End < m.Start {
			return m, errors.InvalidData(errors.PhaseValidate, []string{m.Name},
				"bit range end precedes start")
		}
		m.Bits = m.End - m.Start + 1
	default:
		if m.End != m.Start+m.Bits-1 {
			return m, errors.New(errors.PhaseValidate, errors.KindInvalidData).
				Path(m.Name).
				Detail("bits %d and end %d disagree for start %d", m.Bits, m.End, m.Start).
				Build()
		}
	}

	if m.End/8 >= containerSize {
		return m, errors.SizeMismatch([]string{m.Name}, containerSize*8, m.End+1)
	}
	return m, nil
}
