// Package writer provides an append-only byte sink with a reserve/commit
// contract, so codecs never require a contiguous destination beyond a
// single reserve/commit pair.
//
// ByteWriter is a thin adapter over the teacher-style pooled, amortized-
// growth buffer in internal/pool: small buffers grow by a fixed default
// size, larger ones grow by 25% of current capacity, to minimize
// reallocation frequency under repeated Reserve calls.
package writer

import "github.com/lattice-io/chcore/internal/pool"

// ByteWriter is an append-only byte sink. Reserve returns a writable span
// of exactly min bytes past the current content; the caller writes into
// some prefix of it and calls Commit with the number of bytes actually
// written, which becomes part of the sink's content. The span returned by
// Reserve is only valid until the next Reserve call.
type ByteWriter struct {
	buf          *pool.ByteBuffer
	lastReserved int
}

var bufPool = pool.NewByteBufferPool(pool.BlobBufferDefaultSize, pool.BlobBufferMaxThreshold)

// Get retrieves a ByteWriter from the pool, empty and ready for use.
func Get() *ByteWriter {
	return &ByteWriter{buf: bufPool.Get()}
}

// Put resets w's buffer and returns it to the pool. w itself is not
// reused; only the underlying buffer is.
func Put(w *ByteWriter) {
	if w == nil {
		return
	}
	bufPool.Put(w.buf)
	w.buf = nil
}

// New builds a standalone ByteWriter, not backed by the pool.
func New() *ByteWriter {
	return &ByteWriter{buf: pool.NewByteBuffer(pool.BlobBufferDefaultSize)}
}

// Reserve grows the buffer, if necessary, to guarantee at least min
// writable bytes past the current content, and returns a span of exactly
// min bytes for the caller to write into. Writing into the span does not
// permanently extend the sink's content beyond what Commit confirms.
func (w *ByteWriter) Reserve(min int) []byte {
	w.buf.ExtendOrGrow(min)
	w.lastReserved = min
	start := w.buf.Len() - min

	return w.buf.Slice(start, start+min)
}

// Commit confirms that n of the bytes from the most recent Reserve span
// were actually written, and shrinks off the unused remainder. n must be
// <= the size passed to that Reserve call.
func (w *ByteWriter) Commit(n int) {
	if extra := w.lastReserved - n; extra > 0 {
		w.buf.SetLength(w.buf.Len() - extra)
	}
	w.lastReserved = 0
}

// Bytes returns the accumulated, committed byte slice. The returned slice
// aliases the writer's internal buffer and is valid until the next
// Reserve call.
func (w *ByteWriter) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of committed bytes.
func (w *ByteWriter) Len() int {
	return w.buf.Len()
}

// Append writes data in full via a single Reserve/Commit pair.
func (w *ByteWriter) Append(data []byte) {
	span := w.Reserve(len(data))
	copy(span, data)
	w.Commit(len(data))
}

// Reset truncates the buffer to zero length, retaining its capacity.
func (w *ByteWriter) Reset() {
	w.buf.Reset()
}
