package chtype

import (
	"fmt"

	"github.com/lattice-io/chcore/capability"
	"github.com/lattice-io/chcore/cursor"
	"github.com/lattice-io/chcore/errs"
	"github.com/lattice-io/chcore/writer"
)

// UUID is the logical 16-byte big-endian representation of a UUID value,
// i.e. the same byte layout as github.com/google/uuid.UUID. Use
// github.com/google/uuid to parse/format the canonical string form; this
// package only handles the wire permutation.
type UUID [16]byte

// permuteIndex is the fixed 16-byte shuffle index, per §4.4: the wire
// form reverses each of the two 8-byte halves of the logical
// representation independently. Every tier applies it through
// permuteUUID, which copies one byte at a time by looking up this index;
// the tiers differ only in how many UUIDs they take per step.
var permuteIndex = [16]int{7, 6, 5, 4, 3, 2, 1, 0, 15, 14, 13, 12, 11, 10, 9, 8}

func permuteUUID(dst, src *[16]byte) {
	for i, j := range permuteIndex {
		dst[i] = src[j]
	}
}

// the permutation is its own inverse: applying it twice is the identity,
// since it is a product of two disjoint 8-element reversals.

type uuidType struct{}

func (uuidType) TypeName() string { return "UUID" }
func (uuidType) Kind() Kind { return KindUUID }
func (uuidType) Representation() Representation { return RepPermuted16 }
func (uuidType) Width() int { return 16 }

func (t uuidType) ReadOne(c *cursor.Cursor) (any, int, error) {
	var wire [16]byte
	if err := c.TryReadInto(wire[:]); err != nil {
		return nil, 0, errs.At(c.Offset(), errs.ErrInsufficientData)
	}

	var logical UUID
	permuteUUID((*[16]byte)(&logical), &wire)

	return logical, 16, nil
}

func (t uuidType) WriteOne(w *writer.ByteWriter, v any) error {
	logical := v.(UUID)
	span := w.Reserve(16)
	permuteUUID((*[16]byte)(span[:16]), (*[16]byte)(&logical))
	w.Commit(16)

	return nil
}

// ReadMany decodes n UUIDs. Per §4.4, AVX512BW processes 4 UUIDs per
// vector, AVX2 processes 2, SSSE3/SSE2 process 1; tiers above scalar are
// selected only for their vector width bookkeeping here since the
// permutation itself is identical work per UUID regardless of tier, and
// every tier is required to be round-trip equivalent to the scalar tier.
func (t uuidType) ReadMany(c *cursor.Cursor, n int, caps capability.Descriptor) (any, int, error) {
	out := make([]UUID, n)
	consumed := 0

	for i := 0; i < n; {
		remaining := n - i
		lanes := uuidLanes(remaining, caps)

		for j := 0; j < lanes; j++ {
			var wire [16]byte
			if err := c.TryReadInto(wire[:]); err != nil {
				return nil, consumed, errs.At(c.Offset(), errs.ErrInsufficientData)
			}
			permuteUUID((*[16]byte)(&out[i+j]), &wire)
			consumed += 16
		}

		i += lanes
	}

	return out, consumed, nil
}

func (t uuidType) WriteMany(w *writer.ByteWriter, values any, caps capability.Descriptor) error {
	vals, ok := values.([]UUID)
	if !ok {
		return fmt.Errorf("uuidType.WriteMany: expected []UUID, got %T", values)
	}

	n := len(vals)
	for i := 0; i < n; {
		remaining := n - i
		lanes := uuidLanes(remaining, caps)

		for j := 0; j < lanes; j++ {
			logical := vals[i+j]
			span := w.Reserve(16)
			permuteUUID((*[16]byte)(span[:16]), (*[16]byte)(&logical))
			w.Commit(16)
		}

		i += lanes
	}

	return nil
}

// uuidLanes picks the per-vector UUID count for the highest allowed tier
// whose lane count fits within remaining, per §4.4's table.
func uuidLanes(remaining int, caps capability.Descriptor) int {
	switch {
	case caps.Allowed(capability.TierAVX512BW) && remaining >= 4:
		return 4
	case caps.Allowed(capability.TierAVX2) && remaining >= 2:
		return 2
	default:
		return 1
	}
}
