package regdb

import (
	"encoding/binary"
	"fmt"
)

// Country is one country-table entry: the 2-letter code and the offset of
// its rule collection.
type Country struct {
	Alpha2           [2]byte
	CollectionOffset uint32
}

// FindCountry scans the country table in table order and returns the first
// entry whose code equals alpha2, byte for byte. The world code "00" is an
// ordinary table entry here, not a special case. Duplicate codes resolve to
// the earliest entry.
//
// The whole table is bounds-proven as one span (count times stride, with
// the multiplication checked for overflow) before any entry is read.
func (d *Database) FindCountry(alpha2 [2]byte) (Country, error) {
	h := d.header
	if h.CountryCount > ^uint32(0)/CountrySize {
		return Country{}, fmt.Errorf("country table: count %d overflows: %w",
			h.CountryCount, ErrOutOfBounds)
	}
	table, err := d.resolve(h.CountryOffset, h.CountryCount*CountrySize)
	if err != nil {
		return Country{}, fmt.Errorf("country table: %w", err)
	}

	for i := uint32(0); i < h.CountryCount; i++ {
		entry := table[i*CountrySize : (i+1)*CountrySize]
		if entry[0] == alpha2[0] && entry[1] == alpha2[1] {
			return Country{
				Alpha2:           alpha2,
				CollectionOffset: binary.BigEndian.Uint32(entry[4:8]),
			}, nil
		}
	}

	return Country{}, fmt.Errorf("%q: %w", alpha2[:], ErrCountryNotFound)
}
