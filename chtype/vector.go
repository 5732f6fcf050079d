package chtype

import (
	"github.com/lattice-io/chcore/capability"
	"github.com/lattice-io/chcore/cursor"
	"github.com/lattice-io/chcore/writer"
)

// readFixedBytes fills dst (len must equal n*width) with the next n*width
// bytes read from c, little-endian tightly packed, processing them in
// capability-tiered chunks per §4.2: the highest tier allowed for which
// K(tier) <= the remaining element count is chosen for each chunk, so a
// partial tail naturally falls through to a lower tier or the scalar path.
//
// When a chunk's bytes lie within a single cursor segment, they are copied
// directly via Cursor.ContiguousView; when they straddle a segment
// boundary, Cursor.TryReadInto services the copy into dst itself, which
// plays the role of the bounded scratch buffer named in §4.2.
func readFixedBytes(c *cursor.Cursor, dst []byte, n, width int, caps capability.Descriptor) (int, error) {
	consumed := 0
	for i := 0; i < n; {
		remaining := n - i
		_, lanes := pickTier(width, remaining, caps)

		chunkElems := lanes
		if chunkElems > remaining {
			chunkElems = remaining
		}
		chunkBytes := chunkElems * width

		dstSlice := dst[i*width : i*width+chunkBytes]
		if view, ok := c.ContiguousView(chunkBytes); ok {
			copy(dstSlice, view)
		} else if err := c.TryReadInto(dstSlice); err != nil {
			return consumed, err
		}

		consumed += chunkBytes
		i += chunkElems
	}

	return consumed, nil
}

// writeFixedBytes appends src (len must equal n*width) to w, little-endian
// tightly packed, in the same capability-tiered chunking as readFixedBytes.
// Because every tier copies the same bytes verbatim, writeFixedBytes is
// byte-identical across every tier restriction for the same input, which
// is the boundary policy's non-negotiable property (§4.2).
func writeFixedBytes(w *writer.ByteWriter, src []byte, n, width int, caps capability.Descriptor) {
	for i := 0; i < n; {
		remaining := n - i
		_, lanes := pickTier(width, remaining, caps)

		chunkElems := lanes
		if chunkElems > remaining {
			chunkElems = remaining
		}
		chunkBytes := chunkElems * width

		span := w.Reserve(chunkBytes)
		copy(span, src[i*width:i*width+chunkBytes])
		w.Commit(chunkBytes)

		i += chunkElems
	}
}
