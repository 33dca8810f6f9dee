package schema

import (
	"errors"
	"testing"

	swerrors "github.com/structwire/structwire/errors"
)

func TestResolveBitRange(t *testing.T) {
	tests := []struct {
		name          string
		member        BitFieldMember
		containerSize int
		wantStart     int
		wantEnd       int
		wantBits      int
	}{
		{
			name:          "bits given",
			member:        BitFieldMember{Name: "a", Start: 0, Bits: 4, End: RangeUnset},
			containerSize: 1,
			wantStart:     0, wantEnd: 3, wantBits: 4,
		},
		{
			name:          "end given",
			member:        BitFieldMember{Name: "a", Start: 4, Bits: RangeUnset, End: 7},
			containerSize: 1,
			wantStart:     4, wantEnd: 7, wantBits: 4,
		},
		{
			name:          "both given and consistent",
			member:        BitFieldMember{Name: "a", Start: 2, Bits: 3, End: 4},
			containerSize: 1,
			wantStart:     2, wantEnd: 4, wantBits: 3,
		},
		{
			name:          "neither given defaults to one bit",
			member:        BitFieldMember{Name: "a", Start: 5, Bits: RangeUnset, End: RangeUnset},
			containerSize: 1,
			wantStart:     5, wantEnd: 5, wantBits: 1,
		},
		{
			name:          "spans bytes",
			member:        BitFieldMember{Name: "a", Start: 4, Bits: 8, End: RangeUnset},
			containerSize: 2,
			wantStart:     4, wantEnd: 11, wantBits: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveBitRange(tt.member, tt.containerSize)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Start != tt.wantStart || got.End != tt.wantEnd || got.Bits != tt.wantBits {
				t.Errorf("got start=%d end=%d bits=%d, want start=%d end=%d bits=%d",
					got.Start, got.End, got.Bits, tt.wantStart, tt.wantEnd, tt.wantBits)
			}
		})
	}
}

func TestResolveBitRangeErrors(t *testing.T) {
	tests := []struct {
		name          string
		member        BitFieldMember
		containerSize int
		wantKind      swerrors.Kind
	}{
		{
			name:          "field beyond container",
			member:        BitFieldMember{Name: "a", Start: 8, Bits: 4, End: RangeUnset},
			containerSize: 1,
			wantKind:      swerrors.KindSizeMismatch,
		},
		{
			name:          "last bit beyond container",
			member:        BitFieldMember{Name: "a", Start: 6, Bits: 4, End: RangeUnset},
			containerSize: 1,
			wantKind:      swerrors.KindSizeMismatch,
		},
		{
			name:          "inconsistent bits and end",
			member:        BitFieldMember{Name: "a", Start: 0, Bits: 4, End: 4},
			containerSize: 1,
			wantKind:      swerrors.KindInvalidData,
		},
		{
			name:          "end precedes start",
			member:        BitFieldMember{Name: "a", Start: 4, Bits: RangeUnset, End: 2},
			containerSize: 1,
			wantKind:      swerrors.KindInvalidData,
		},
		{
			name:          "negative start",
			member:        BitFieldMember{Name: "a", Start: -1, Bits: 1, End: RangeUnset},
			containerSize: 1,
			wantKind:      swerrors.KindInvalidData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveBitRange(tt.member, tt.containerSize)
			if err == nil {
				t.Fatal("expected an error")
			}
			want := &swerrors.Error{Phase: swerrors.PhaseValidate, Kind: tt.wantKind}
			if !errors.Is(err, want) {
				t.Errorf("got %v, want kind %s", err, tt.wantKind)
			}
		})
	}
}
