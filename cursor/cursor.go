// Package cursor provides a walk-forward read position across a
// fragmented, non-contiguous byte sequence.
//
// A Cursor never copies its input segments up front: it holds a reference
// to the slice of byte spans handed to it (for example, the chunks of an
// HTTP body or the buffers read off a TCP stream) and tracks a (segment
// index, offset within segment) position. Every read method reports the
// number of bytes it consumed so the caller (a framer) can accumulate a
// running byte-accounting total. A Cursor never rewinds.
package cursor

import "github.com/lattice-io/chcore/errs"

// Cursor is a logical read position over a sequence of byte spans.
//
// Cursor is not safe for concurrent use; distinct Cursor values over
// distinct segment slices may be used concurrently from separate
// goroutines.
type Cursor struct {
	segments [][]byte
	segIdx   int
	segOff   int
	consumed int64
}

// New builds a Cursor over segments, starting at the first byte of the
// first non-empty segment.
func New(segments [][]byte) *Cursor {
	c := &Cursor{segments: segments}
	c.skipEmpty()

	return c
}

// skipEmpty advances past any exhausted or zero-length segments so that
// segIdx always points at a segment with unread bytes, or past the end.
func (c *Cursor) skipEmpty() {
	for c.segIdx < len(c.segments) && c.segOff >= len(c.segments[c.segIdx]) {
		c.segIdx++
		c.segOff = 0
	}
}

// Offset returns the total number of bytes consumed from this cursor so
// far. It is used as the byte-offset hint attached to errors.
func (c *Cursor) Offset() int64 {
	return c.consumed
}

// IsAtSegmentBoundary reports whether the cursor's current position is
// exactly at the start of a segment (or at end of input).
func (c *Cursor) IsAtSegmentBoundary() bool {
	c.skipEmpty()
	return c.segOff == 0
}

// RemainingLength returns the total number of unread bytes across every
// remaining segment.
func (c *Cursor) RemainingLength() int64 {
	var n int64
	if c.segIdx < len(c.segments) {
		n += int64(len(c.segments[c.segIdx]) - c.segOff)
	}
	for i := c.segIdx + 1; i < len(c.segments); i++ {
		n += int64(len(c.segments[i]))
	}

	return n
}

// PeekByte returns the next unread byte without advancing the cursor. It
// fails with errs.ErrInsufficientData if no bytes remain.
func (c *Cursor) PeekByte() (byte, error) {
	c.skipEmpty()
	if c.segIdx >= len(c.segments) {
		return 0, errs.ErrInsufficientData
	}

	return c.segments[c.segIdx][c.segOff], nil
}

// Advance moves the cursor forward by n bytes, which must not exceed
// RemainingLength(). Advance updates the running byte-accounting total.
func (c *Cursor) Advance(n int) {
	for n > 0 {
		c.skipEmpty()
		if c.segIdx >= len(c.segments) {
			return
		}

		avail := len(c.segments[c.segIdx]) - c.segOff
		step := n
		if step > avail {
			step = avail
		}

		c.segOff += step
		c.consumed += int64(step)
		n -= step
	}
}

// TryReadInto copies exactly len(dest) unread bytes into dest, advancing
// the cursor by that many bytes. It fails with errs.ErrInsufficientData,
// leaving the cursor unchanged, if fewer than len(dest) bytes remain.
//
// dest may span a segment boundary; TryReadInto copies piecewise across as
// many segments as needed.
func (c *Cursor) TryReadInto(dest []byte) error {
	if int64(len(dest)) > c.RemainingLength() {
		return errs.ErrInsufficientData
	}

	written := 0
	for written < len(dest) {
		c.skipEmpty()
		seg := c.segments[c.segIdx]
		avail := len(seg) - c.segOff
		need := len(dest) - written
		step := need
		if step > avail {
			step = avail
		}

		copy(dest[written:written+step], seg[c.segOff:c.segOff+step])
		c.segOff += step
		c.consumed += int64(step)
		written += step
	}

	return nil
}

// ContiguousView returns a zero-copy view of the next n unread bytes and
// advances the cursor past them, if and only if those n bytes lie entirely
// within the current segment (IsAtSegmentBoundary or not, as long as no
// segment boundary is crossed). The second return value is false, and the
// cursor is left unchanged, if the bytes span a segment boundary or fewer
// than n bytes remain; the caller must then fall back to TryReadInto with a
// scratch buffer.
func (c *Cursor) ContiguousView(n int) ([]byte, bool) {
	c.skipEmpty()
	if c.segIdx >= len(c.segments) {
		return nil, false
	}

	seg := c.segments[c.segIdx]
	if len(seg)-c.segOff < n {
		return nil, false
	}

	view := seg[c.segOff : c.segOff+n]
	c.segOff += n
	c.consumed += int64(n)

	return view, true
}
