package chtype

import "github.com/lattice-io/chcore/capability"

// maxVectorBytes is the largest chunk, in bytes, that any tier in §4.2's
// table processes as a single "vector" (64, e.g. AVX512BW over 1-byte
// elements). readFixedBytes does not size a scratch buffer from it: a
// chunk that straddles a cursor segment boundary is copied by
// Cursor.TryReadInto directly into the destination slice.
const maxVectorBytes = 64

// lanesForWidth returns the number of elements of the given byte width
// that a single vector at tier t holds, per §4.2's table. It returns 0 if
// tier t does not apply to elements of this width (e.g. AVX512BW does not
// apply to 4-byte elements).
func lanesForWidth(width int, t capability.Tier) int {
	switch width {
	case 1:
		switch t {
		case capability.TierAVX512BW:
			return 64
		case capability.TierAVX2:
			return 32
		case capability.TierSSE2:
			return 16
		}
	case 2:
		switch t {
		case capability.TierAVX512BW:
			return 32
		case capability.TierAVX2:
			return 16
		case capability.TierSSE2:
			return 8
		}
	case 4:
		switch t {
		case capability.TierAVX512F:
			return 16
		case capability.TierAVX2:
			return 8
		case capability.TierSSE2:
			return 4
		}
	case 8:
		switch t {
		case capability.TierAVX512F:
			return 8
		case capability.TierAVX2:
			return 4
		case capability.TierSSE2:
			return 2
		}
	}

	return 0
}

// tierLadder lists, highest first, every tier that applies to elements of
// the given byte width.
func tierLadder(width int) []capability.Tier {
	switch width {
	case 1, 2:
		return []capability.Tier{capability.TierAVX512BW, capability.TierAVX2, capability.TierSSE2}
	case 4, 8:
		return []capability.Tier{capability.TierAVX512F, capability.TierAVX2, capability.TierSSE2}
	default:
		return nil
	}
}

// pickTier chooses the highest tier allowed by caps for which the vector
// lane count is <= remaining, per §4.2's algorithm: "pick the highest tier
// allowed by the CapabilityDescriptor for which K(tier) <= N". It returns
// (TierScalar, 1) if no higher tier qualifies, matching the scalar
// fallback.
func pickTier(width, remaining int, caps capability.Descriptor) (capability.Tier, int) {
	for _, t := range tierLadder(width) {
		lanes := lanesForWidth(width, t)
		if lanes > 0 && caps.Allowed(t) && lanes <= remaining {
			return t, lanes
		}
	}

	return capability.TierScalar, 1
}
