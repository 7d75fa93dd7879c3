package regdb

import "fmt"

// resolveSpan is the single bounds gate for the file's self-referential
// offsets: it returns the size-byte span starting at off, or ErrOutOfBounds
// when the span does not fit in the usable length.
//
// The comparison is arranged so a hostile offset near the top of the uint32
// range cannot wrap around to a small value: off+size is never computed
// before both operands are proven to fit.
func resolveSpan(data []byte, usable, off, size uint32) ([]byte, error) {
	if size > usable || off > usable-size {
		return nil, fmt.Errorf("span %#x+%d exceeds usable length %d: %w",
			off, size, usable, ErrOutOfBounds)
	}
	return data[off : uint64(off)+uint64(size)], nil
}

// resolve dereferences an offset inside the database through the bounds
// gate. Every structure read, including nested and recomputed offsets, must
// come through here.
func (d *Database) resolve(off, size uint32) ([]byte, error) {
	return resolveSpan(d.data, d.usable, off, size)
}
