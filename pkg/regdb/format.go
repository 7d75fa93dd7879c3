// Package regdb loads, authenticates, and reads the binary wireless
// regulatory database (regulatory.bin).
//
// The file is untrusted input: every pointer-like field inside it is a byte
// offset from the start of the buffer and is treated as attacker-controlled
// until the trailing signature verifies. All offset dereferencing routes
// through a single bounds-checked resolver.
package regdb

import "encoding/binary"

const (
	// MagicNumber identifies regulatory database files ("RGDB").
	MagicNumber uint32 = 0x52474442
	// Version is the supported database format version.
	Version uint32 = 19
)

// Record sizes in bytes. The layout is fixed by the kernel-facing format:
// all integers big-endian, all offsets relative to the start of the file.
const (
	// HeaderSize covers magic, version, country-table offset, country
	// count, and signature length.
	HeaderSize = 20
	// CountrySize is the country-table stride: 2 alpha2 bytes, 2 pad
	// bytes, and the rule-collection offset.
	CountrySize = 8
	// RuleSize covers the freq-range offset, power-rule offset, and flags.
	RuleSize = 12
	// FreqRangeSize covers start, end, and max bandwidth, all in kHz.
	FreqRangeSize = 12
	// PowerRuleSize covers max antenna gain (mBi) and max EIRP (mBm).
	PowerRuleSize = 8

	// collectionHeadSize is the rule count preceding the offset array.
	collectionHeadSize = 4
	rulePtrSize        = 4
)

// Header is the fixed database header.
type Header struct {
	Magic           uint32
	Version         uint32
	CountryOffset   uint32
	CountryCount    uint32
	SignatureLength uint32
}

func decodeHeader(b []byte) Header {
	return Header{
		Magic:           binary.BigEndian.Uint32(b[0:4]),
		Version:         binary.BigEndian.Uint32(b[4:8]),
		CountryOffset:   binary.BigEndian.Uint32(b[8:12]),
		CountryCount:    binary.BigEndian.Uint32(b[12:16]),
		SignatureLength: binary.BigEndian.Uint32(b[16:20]),
	}
}
