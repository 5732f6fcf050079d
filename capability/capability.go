// Package capability describes which SIMD tiers a bulk codec kernel is
// allowed to use.
//
// A Descriptor is plain, immutable data: six booleans, one per tier. Bulk
// codec methods in chtype, and the native framer that calls them, take a
// Descriptor by value and select a kernel per call; there is no hidden global state and
// no per-process capability cache, so behavior is reproducible across
// hardware and across repeated calls with different caller-supplied masks.
//
// # Basic usage
//
//	d := capability.Detect()                 // actual hardware
//	d = capability.Constrain(d, capability.Descriptor{SSE2: true}) // force scalar+SSE2 only
//	vals, consumed, err := chtype.ByKind(chtype.KindInt32).ReadMany(cur, n, d)
package capability

import (
	"golang.org/x/sys/cpu"

	"github.com/lattice-io/chcore/internal/options"
)

// Descriptor is an immutable record of which SIMD tiers a bulk kernel may
// use. Higher tiers are not implied by lower ones and vice versa: a kernel
// consults each flag it needs individually, it never assumes that AVX2
// being set implies SSE2 is also set.
type Descriptor struct {
	AVX512BW bool
	AVX512F  bool
	AVX2     bool
	AVX      bool
	SSSE3    bool
	SSE2     bool
}

// Tier identifies one SIMD capability tier, ordered from lowest to highest.
type Tier int

const (
	TierScalar Tier = iota
	TierSSE2
	TierSSSE3
	TierAVX
	TierAVX2
	TierAVX512F
	TierAVX512BW
)

// Allowed reports whether t is permitted under d.
func (d Descriptor) Allowed(t Tier) bool {
	switch t {
	case TierAVX512BW:
		return d.AVX512BW
	case TierAVX512F:
		return d.AVX512F
	case TierAVX2:
		return d.AVX2
	case TierAVX:
		return d.AVX
	case TierSSSE3:
		return d.SSSE3
	case TierSSE2:
		return d.SSE2
	default:
		return true // scalar is always allowed
	}
}

// Full is a Descriptor with every tier allowed. It is useful as an
// allow-mask argument to Constrain when the caller wants to permit
// whatever the actual hardware supports.
var Full = Descriptor{
	AVX512BW: true,
	AVX512F:  true,
	AVX2:     true,
	AVX:      true,
	SSSE3:    true,
	SSE2:     true,
}

// Scalar is a Descriptor with every tier disallowed, forcing the scalar
// fallback path in every bulk kernel. Useful for tests that must verify
// scalar/SIMD output equivalence.
var Scalar = Descriptor{}

// DetectHardware reports the actual SIMD tiers available on the running
// CPU, using golang.org/x/sys/cpu's feature flags. The result never
// changes at runtime and may be cached by the caller, but capability
// itself never caches it: every call re-reads the cpu.X86 feature struct.
func DetectHardware() Descriptor {
	return Descriptor{
		AVX512BW: cpu.X86.HasAVX512BW,
		AVX512F:  cpu.X86.HasAVX512F,
		AVX2:     cpu.X86.HasAVX2,
		AVX:      cpu.X86.HasAVX,
		SSSE3:    cpu.X86.HasSSSE3,
		SSE2:     cpu.X86.HasSSE2,
	}
}

// Detect is an alias for DetectHardware kept for call-site brevity; it is
// the descriptor every production codec call should start from before
// optionally constraining it with Constrain.
func Detect() Descriptor {
	return DetectHardware()
}

// Constrain computes the elementwise AND of actual and allowed: a tier is
// permitted in the result only if both the actual hardware exposes it and
// the caller's allow-mask permits it.
func Constrain(actual, allowed Descriptor) Descriptor {
	return Descriptor{
		AVX512BW: actual.AVX512BW && allowed.AVX512BW,
		AVX512F:  actual.AVX512F && allowed.AVX512F,
		AVX2:     actual.AVX2 && allowed.AVX2,
		AVX:      actual.AVX && allowed.AVX,
		SSSE3:    actual.SSSE3 && allowed.SSSE3,
		SSE2:     actual.SSE2 && allowed.SSE2,
	}
}

// New builds a Descriptor by applying opts in order over a zero-value
// (all-scalar) starting point, the functional-option pattern the teacher's
// internal/options package provides for its encoder constructors.
func New(opts ...options.Option[*Descriptor]) (Descriptor, error) {
	d := &Descriptor{}
	if err := options.Apply(d, opts...); err != nil {
		return Descriptor{}, err
	}

	return *d, nil
}

// WithActualHardware is a New option that starts from the running CPU's
// detected tiers.
func WithActualHardware() options.Option[*Descriptor] {
	return options.NoError(func(d *Descriptor) {
		*d = DetectHardware()
	})
}

// WithAllowMask is a New option that constrains whatever tiers are already
// set in d down to those also permitted by mask.
func WithAllowMask(mask Descriptor) options.Option[*Descriptor] {
	return options.NoError(func(d *Descriptor) {
		*d = Constrain(*d, mask)
	})
}

// WithTierUpTo is a New option that sets d to permit every tier at or below
// max, discarding whatever was set before it.
func WithTierUpTo(max Tier) options.Option[*Descriptor] {
	return options.NoError(func(d *Descriptor) {
		*d = UpTo(max)
	})
}

// UpTo builds a Descriptor permitting every tier at or below max, in ISA
// inclusion order (SSE2 < SSSE3 < AVX < AVX2 < AVX512F < AVX512BW). It is a
// convenience for tests that enumerate "≤SSE2", "≤AVX2", etc. tier
// restrictions as named in the bulk-equivalence property.
func UpTo(max Tier) Descriptor {
	var d Descriptor
	if max >= TierSSE2 {
		d.SSE2 = true
	}
	if max >= TierSSSE3 {
		d.SSSE3 = true
	}
	if max >= TierAVX {
		d.AVX = true
	}
	if max >= TierAVX2 {
		d.AVX2 = true
	}
	if max >= TierAVX512F {
		d.AVX512F = true
	}
	if max >= TierAVX512BW {
		d.AVX512BW = true
	}

	return d
}
