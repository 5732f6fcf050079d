// Package chtype implements the per-primitive-type codec dispatch table:
// the ClickHouseType capability interface (§3) and one concrete
// implementation per registered wire type, each with a scalar singleton
// path and a capability-gated bulk path.
//
// Rather than late-bound method resolution over an open set of type
// instances, chtype follows a tagged-variant strategy (§9): Kind is a
// closed enum, each Kind has exactly one Type implementation, and callers
// that only know a wire type name resolve it through Registry, a flat
// name -> Type map keyed by an xxhash of the canonical name.
package chtype

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lattice-io/chcore/capability"
	"github.com/lattice-io/chcore/cursor"
	"github.com/lattice-io/chcore/errs"
	"github.com/lattice-io/chcore/internal/collision"
	"github.com/lattice-io/chcore/internal/hash"
	"github.com/lattice-io/chcore/writer"
)

// Kind identifies one of the closed set of element types this package
// implements.
type Kind uint8

const (
	KindInt8 Kind = iota
	KindUInt8
	KindInt16
	KindUInt16
	KindInt32
	KindUInt32
	KindInt64
	KindUInt64
	KindFloat32
	KindFloat64
	KindString
	KindFixedString
	KindUUID
	KindDate
	KindDateTime
	KindDateTime64
	KindBool
)

// Representation tags the on-wire shape of a Kind, per §3's
// native_representation.
type Representation int

const (
	RepFixedWidth  Representation = iota // fixed W-byte little-endian scalar
	RepVarString                         // varint(length) || utf8 bytes
	RepFixedString                       // exactly N bytes, no length prefix
	RepPermuted16                        // 16-byte mixed-endian permutation (UUID)
)

// Type is the ClickHouseType capability interface (§3). Every registered
// element type implements it; ReadMany/WriteMany accept and return the
// concrete Go slice type for this Kind boxed as any (e.g. []int32 for
// KindInt32), so a caller that already knows the Kind from a
// ColumnDescriptor can type-assert directly, and a caller that only has a
// Type handle (the Registry path) can still drive a full decode.
type Type interface {
	// TypeName is the canonical textual name emitted on the wire, e.g.
	// "Int32", "String", "UUID", "DateTime64(3)".
	TypeName() string

	// Kind identifies which concrete element type this is.
	Kind() Kind

	// Representation reports the on-wire shape of this type.
	Representation() Representation

	// Width is the fixed on-wire byte width for RepFixedWidth,
	// RepFixedString, and RepPermuted16 types; it is 0 for RepVarString.
	Width() int

	// ReadOne decodes a single value from c, returning it boxed as any,
	// along with the number of bytes consumed.
	ReadOne(c *cursor.Cursor) (any, int, error)

	// WriteOne encodes a single value, which must be of the Go type this
	// Kind uses (e.g. int32 for KindInt32), to w.
	WriteOne(w *writer.ByteWriter, v any) error

	// ReadMany decodes n values from c into a freshly allocated slice of
	// this Kind's Go type, boxed as any, using the capability-gated bulk
	// kernel described in §4.2-§4.4. It returns the slice, the number of
	// bytes consumed, and any error.
	ReadMany(c *cursor.Cursor, n int, caps capability.Descriptor) (any, int, error)

	// WriteMany encodes values (which must be a slice of this Kind's Go
	// type) to w using the capability-gated bulk kernel.
	WriteMany(w *writer.ByteWriter, values any, caps capability.Descriptor) error
}

// ByKind returns the singleton Type implementation for k, or nil if k has
// no unparameterized implementation. KindFixedString and KindDateTime64
// return nil: their Type depends on a parameter and is built via
// ParseElementTypeName or NewDateTime64Type instead.
func ByKind(k Kind) Type {
	switch k {
	case KindInt8:
		return int8Type{}
	case KindUInt8:
		return uint8Type{}
	case KindInt16:
		return int16Type{}
	case KindUInt16:
		return uint16Type{}
	case KindInt32:
		return int32Type{}
	case KindUInt32:
		return uint32Type{}
	case KindInt64:
		return int64Type{}
	case KindUInt64:
		return uint64Type{}
	case KindFloat32:
		return float32Type{}
	case KindFloat64:
		return float64Type{}
	case KindString:
		return stringType{}
	case KindUUID:
		return uuidType{}
	case KindDate:
		return dateType{}
	case KindDateTime:
		return dateTimeType{}
	case KindBool:
		return boolType{}
	default:
		return nil
	}
}

// Registry resolves a wire type name to a Type, tolerating type names this
// package does not recognize (§9, §7 ErrUnknownType) instead of panicking.
//
// It is the "optional registry keyed by wire type name" named by §9 as the
// strategy for extending UnknownType tolerance without open-ended runtime
// dispatch. Lookups hash the name through internal/hash, the same
// xxhash-backed ID function the teacher uses for metric-name collision
// detection, repurposed here for type-name dispatch.
type Registry struct {
	byHash map[uint64]Type
	track  *collision.Tracker
}

// NewRegistry builds a Registry pre-populated with every canonical,
// unparameterized type name this package implements (everything except
// FixedString(N) and DateTime64(scale), which carry a parameter and are
// constructed via ParseTypeName instead).
func NewRegistry() *Registry {
	r := &Registry{byHash: make(map[uint64]Type, 16), track: collision.NewTracker()}
	for _, k := range []Kind{
		KindInt8, KindUInt8, KindInt16, KindUInt16,
		KindInt32, KindUInt32, KindInt64, KindUInt64,
		KindFloat32, KindFloat64, KindString, KindUUID,
		KindDate, KindDateTime, KindBool,
	} {
		t := ByKind(k)
		if err := r.Register(t); err != nil {
			// Cannot happen: these are the package's own fixed, distinct
			// canonical names.
			panic(err)
		}
	}

	return r
}

// Register adds t to the registry, keyed by t.TypeName(). It fails with
// errs.ErrTypeAlreadyRegistered if the same name is registered twice. A
// hash collision between two distinct names does not fail registration
// (the later name wins the bucket); HasCollision reports whether this has
// happened.
func (r *Registry) Register(t Type) error {
	h := hash.ID(t.TypeName())
	if err := r.track.Track(t.TypeName(), h); err != nil {
		return err
	}

	r.byHash[h] = t

	return nil
}

// HasCollision reports whether two distinct registered type names have
// ever hashed to the same bucket.
func (r *Registry) HasCollision() bool {
	return r.track.HasCollision()
}

// Validate returns errs.ErrTypeNameCollision if any two distinct type
// names registered so far have hashed to the same bucket. Registration
// itself tolerates a collision (the later name silently wins the
// bucket); a caller that cannot accept a silently-shadowed type name
// should call Validate after populating a Registry with
// caller-supplied names (e.g. via ParseTypeName results fed back
// through Register) and treat a non-nil result as fatal.
func (r *Registry) Validate() error {
	if r.track.HasCollision() {
		return errs.ErrTypeNameCollision
	}

	return nil
}

// Lookup resolves name to a Type. It returns errs.ErrUnknownType if name
// does not match any registered or parametrized type name.
func (r *Registry) Lookup(name string) (Type, error) {
	if t, ok := r.byHash[hash.ID(name)]; ok {
		return t, nil
	}

	// Parametrized types (FixedString(N), DateTime64(scale)) are not
	// pre-registered since their Type value depends on the parameter; try
	// parsing them directly.
	if t, _, err := ParseElementTypeName(name); err == nil {
		return t, nil
	}

	return nil, fmt.Errorf("%w: %q", errs.ErrUnknownType, name)
}

// ParseTypeName parses a full wire type name, including any number of
// Array(...) wrapping layers, per §6's grammar. It returns the element
// Type and the array nesting depth (0 for a scalar column).
func ParseTypeName(name string) (Type, int, error) {
	depth := 0
	rest := name
	for {
		trimmed, ok := stripArrayWrapper(rest)
		if !ok {
			break
		}
		rest = trimmed
		depth++
	}

	t, _, err := ParseElementTypeName(rest)
	if err != nil {
		return nil, 0, err
	}

	return t, depth, nil
}

func stripArrayWrapper(s string) (string, bool) {
	const prefix = "Array("
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, ")") {
		return "", false
	}

	return s[len(prefix) : len(s)-1], true
}

// ParseElementTypeName parses a single, non-Array-wrapped wire type name,
// including the parametrized forms FixedString(N) and DateTime64(scale)
// licensed by §6. The second return value is the scale/length parameter
// when one was present, or 0 otherwise.
func ParseElementTypeName(name string) (Type, int, error) {
	switch name {
	case "Int8":
		return int8Type{}, 0, nil
	case "UInt8":
		return uint8Type{}, 0, nil
	case "Int16":
		return int16Type{}, 0, nil
	case "UInt16":
		return uint16Type{}, 0, nil
	case "Int32":
		return int32Type{}, 0, nil
	case "UInt32":
		return uint32Type{}, 0, nil
	case "Int64":
		return int64Type{}, 0, nil
	case "UInt64":
		return uint64Type{}, 0, nil
	case "Float32":
		return float32Type{}, 0, nil
	case "Float64":
		return float64Type{}, 0, nil
	case "String":
		return stringType{}, 0, nil
	case "UUID":
		return uuidType{}, 0, nil
	case "Date":
		return dateType{}, 0, nil
	case "DateTime":
		return dateTimeType{}, 0, nil
	case "Bool":
		return boolType{}, 0, nil
	}

	if n, ok := parseParametrized(name, "FixedString("); ok {
		return fixedStringType{n: n}, n, nil
	}
	if scale, ok := parseParametrized(name, "DateTime64("); ok {
		return dateTime64Type{scale: scale}, scale, nil
	}

	return nil, 0, fmt.Errorf("%w: %q", errs.ErrInvalidTypeName, name)
}

func parseParametrized(name, prefix string) (int, bool) {
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ")") {
		return 0, false
	}

	body := name[len(prefix) : len(name)-1]
	n, err := strconv.Atoi(strings.TrimSpace(body))
	if err != nil || n < 0 {
		return 0, false
	}

	return n, true
}
