package chtype

import (
	"fmt"
	"time"

	"github.com/lattice-io/chcore/capability"
	"github.com/lattice-io/chcore/cursor"
	"github.com/lattice-io/chcore/errs"
	"github.com/lattice-io/chcore/writer"
)

// Date, DateTime and DateTime64 store their canonical Go value as the same
// width-native integer the database puts on the wire (uint16 days, uint32
// seconds, int64 ticks respectively), so decode(encode(v)) = v holds
// exactly. ToTime/FromTime helpers below convert to and from time.Time for
// callers that want calendar semantics instead of the raw tick count; per
// §9's third open question, DateTime64's tick size and epoch follow the
// database's documented rule (ticks of 10^-scale seconds since the Unix
// epoch) without any added timezone handling.

const secondsPerDay = 24 * 60 * 60

// --- Date (UInt16 days since the Unix epoch) ---

type dateType struct{}

func (dateType) TypeName() string { return "Date" }
func (dateType) Kind() Kind { return KindDate }
func (dateType) Representation() Representation { return RepFixedWidth }
func (dateType) Width() int { return 2 }

func (t dateType) ReadOne(c *cursor.Cursor) (any, int, error) {
	b, err := readOneFixed(c, 2)
	if err != nil {
		return nil, 0, err
	}
	return le.Uint16(b), 2, nil
}

func (t dateType) WriteOne(w *writer.ByteWriter, v any) error {
	span := w.Reserve(2)
	le.PutUint16(span, v.(uint16))
	w.Commit(2)
	return nil
}

func (t dateType) ReadMany(c *cursor.Cursor, n int, caps capability.Descriptor) (any, int, error) {
	raw := make([]byte, n*2)
	consumed, err := readFixedBytes(c, raw, n, 2, caps)
	if err != nil {
		return nil, consumed, errs.At(c.Offset(), err)
	}
	out := make([]uint16, n)
	for i := range out {
		out[i] = le.Uint16(raw[i*2:])
	}
	return out, consumed, nil
}

func (t dateType) WriteMany(w *writer.ByteWriter, values any, caps capability.Descriptor) error {
	vals, ok := values.([]uint16)
	if !ok {
		return fmt.Errorf("dateType.WriteMany: expected []uint16, got %T", values)
	}
	raw := make([]byte, len(vals)*2)
	for i, v := range vals {
		le.PutUint16(raw[i*2:], v)
	}
	writeFixedBytes(w, raw, len(vals), 2, caps)
	return nil
}

// DateToTime converts a Date's raw day count to a UTC time.Time at
// midnight of that day.
func DateToTime(days uint16) time.Time {
	return time.Unix(int64(days)*secondsPerDay, 0).UTC()
}

// TimeToDate converts t to a Date day count, truncating to the start of
// its UTC day.
func TimeToDate(t time.Time) uint16 {
	days := t.UTC().Unix() / secondsPerDay
	return uint16(days) //nolint:gosec
}

// --- DateTime (UInt32 seconds since the Unix epoch) ---

type dateTimeType struct{}

func (dateTimeType) TypeName() string { return "DateTime" }
func (dateTimeType) Kind() Kind { return KindDateTime }
func (dateTimeType) Representation() Representation { return RepFixedWidth }
func (dateTimeType) Width() int { return 4 }

func (t dateTimeType) ReadOne(c *cursor.Cursor) (any, int, error) {
	b, err := readOneFixed(c, 4)
	if err != nil {
		return nil, 0, err
	}
	return le.Uint32(b), 4, nil
}

func (t dateTimeType) WriteOne(w *writer.ByteWriter, v any) error {
	span := w.Reserve(4)
	le.PutUint32(span, v.(uint32))
	w.Commit(4)
	return nil
}

func (t dateTimeType) ReadMany(c *cursor.Cursor, n int, caps capability.Descriptor) (any, int, error) {
	raw := make([]byte, n*4)
	consumed, err := readFixedBytes(c, raw, n, 4, caps)
	if err != nil {
		return nil, consumed, errs.At(c.Offset(), err)
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = le.Uint32(raw[i*4:])
	}
	return out, consumed, nil
}

func (t dateTimeType) WriteMany(w *writer.ByteWriter, values any, caps capability.Descriptor) error {
	vals, ok := values.([]uint32)
	if !ok {
		return fmt.Errorf("dateTimeType.WriteMany: expected []uint32, got %T", values)
	}
	raw := make([]byte, len(vals)*4)
	for i, v := range vals {
		le.PutUint32(raw[i*4:], v)
	}
	writeFixedBytes(w, raw, len(vals), 4, caps)
	return nil
}

// DateTimeToTime converts a DateTime's raw second count to a UTC time.Time.
func DateTimeToTime(seconds uint32) time.Time {
	return time.Unix(int64(seconds), 0).UTC()
}

// TimeToDateTime converts t to a DateTime second count.
func TimeToDateTime(t time.Time) uint32 {
	return uint32(t.UTC().Unix()) //nolint:gosec
}

// --- DateTime64 (Int64 ticks since the Unix epoch, at 10^-scale seconds) ---

type dateTime64Type struct {
	scale int
}

func (t dateTime64Type) TypeName() string { return fmt.Sprintf("DateTime64(%d)", t.scale) }
func (dateTime64Type) Kind() Kind { return KindDateTime64 }
func (dateTime64Type) Representation() Representation { return RepFixedWidth }
func (dateTime64Type) Width() int { return 8 }

// Scale reports the tick resolution exponent: ticks are 10^-scale seconds.
func (t dateTime64Type) Scale() int { return t.scale }

func (t dateTime64Type) ReadOne(c *cursor.Cursor) (any, int, error) {
	b, err := readOneFixed(c, 8)
	if err != nil {
		return nil, 0, err
	}
	return int64(le.Uint64(b)), 8, nil
}

func (t dateTime64Type) WriteOne(w *writer.ByteWriter, v any) error {
	span := w.Reserve(8)
	le.PutUint64(span, uint64(v.(int64)))
	w.Commit(8)
	return nil
}

func (t dateTime64Type) ReadMany(c *cursor.Cursor, n int, caps capability.Descriptor) (any, int, error) {
	raw := make([]byte, n*8)
	consumed, err := readFixedBytes(c, raw, n, 8, caps)
	if err != nil {
		return nil, consumed, errs.At(c.Offset(), err)
	}
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(le.Uint64(raw[i*8:]))
	}
	return out, consumed, nil
}

func (t dateTime64Type) WriteMany(w *writer.ByteWriter, values any, caps capability.Descriptor) error {
	vals, ok := values.([]int64)
	if !ok {
		return fmt.Errorf("dateTime64Type.WriteMany: expected []int64, got %T", values)
	}
	raw := make([]byte, len(vals)*8)
	for i, v := range vals {
		le.PutUint64(raw[i*8:], uint64(v))
	}
	writeFixedBytes(w, raw, len(vals), 8, caps)
	return nil
}

// NewDateTime64Type constructs the DateTime64 type handle for the given
// scale (tick resolution exponent, 10^-scale seconds).
func NewDateTime64Type(scale int) Type { return dateTime64Type{scale: scale} }

// DateTime64ToTime converts a DateTime64 raw tick value at the given scale
// to a UTC time.Time.
func DateTime64ToTime(ticks int64, scale int) time.Time {
	return time.Unix(0, ticksToNanos(ticks, scale)).UTC()
}

// TimeToDateTime64 converts t to a DateTime64 raw tick value at the given
// scale.
func TimeToDateTime64(t time.Time, scale int) int64 {
	return nanosToTicks(t.UTC().UnixNano(), scale)
}

// ticksToNanos and nanosToTicks convert between a DateTime64 tick count
// (10^-scale seconds) and nanoseconds using pure integer arithmetic: scale
// values run up to 9 (nanosecond resolution) and the wire values are at
// most 64 bits, so routing this conversion through float64 (as Go's
// math.Pow10 would invite) loses precision once ticks exceeds 2^53 - the
// reason this is integer-only rather than the more obvious seconds := ticks
// / divisor float expression.
func ticksToNanos(ticks int64, scale int) int64 {
	switch {
	case scale == 9:
		return ticks
	case scale < 9:
		return ticks * pow10(9-scale)
	default:
		return ticks / pow10(scale-9)
	}
}

func nanosToTicks(ns int64, scale int) int64 {
	switch {
	case scale == 9:
		return ns
	case scale < 9:
		return ns / pow10(9-scale)
	default:
		return ns * pow10(scale-9)
	}
}

func pow10(n int) int64 {
	r := int64(1)
	for ; n > 0; n-- {
		r *= 10
	}

	return r
}
