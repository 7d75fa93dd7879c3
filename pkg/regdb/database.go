package regdb

import (
	"fmt"
	"math"
)

// Database is a validated view over one loaded regulatory database. The
// backing buffer is read-only and immutable for the lifetime of the run;
// every structure handed out is a transient view into it, never a copy that
// outlives Close.
//
// A freshly opened Database has passed structural header validation only.
// Its contents must not be interpreted as trustworthy regulatory data until
// Verify succeeds.
type Database struct {
	mmap   *mmapFile // nil when constructed from an in-memory buffer
	data   []byte
	usable uint32 // authenticated length: total minus trailing signature
	header Header
	sig    []byte
}

// Open maps the database file at path read-only and validates its header.
func Open(path string) (*Database, error) {
	m, err := openMmap(path)
	if err != nil {
		return nil, err
	}

	db, err := New(m.data)
	if err != nil {
		m.close()
		return nil, err
	}
	db.mmap = m
	return db, nil
}

// New validates the header of an in-memory database buffer. The buffer must
// stay alive and unmodified for the lifetime of the returned Database.
//
// Validation order: resolve the header span, check magic, check version,
// then derive the authenticated length from the declared signature length.
// A signature length that leaves less than a header's worth of body is
// rejected, so later bounds checks can never run into the signature bytes.
func New(data []byte) (*Database, error) {
	if int64(len(data)) > math.MaxUint32 {
		return nil, fmt.Errorf("database length %d exceeds addressable range: %w",
			len(data), ErrOutOfBounds)
	}
	total := uint32(len(data))

	hb, err := resolveSpan(data, total, 0, HeaderSize)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	h := decodeHeader(hb)

	if h.Magic != MagicNumber {
		return nil, fmt.Errorf("magic %#x, want %#x: %w", h.Magic, MagicNumber, ErrInvalidMagic)
	}
	if h.Version != Version {
		return nil, fmt.Errorf("version %d, want %d: %w", h.Version, Version, ErrInvalidVersion)
	}

	if h.SignatureLength > total {
		return nil, fmt.Errorf("signature length %d exceeds database length %d: %w",
			h.SignatureLength, total, ErrInvalidSignatureLength)
	}
	usable := total - h.SignatureLength
	if usable <= HeaderSize {
		return nil, fmt.Errorf("signature length %d leaves %d byte body: %w",
			h.SignatureLength, usable, ErrInvalidSignatureLength)
	}

	return &Database{
		data:   data,
		usable: usable,
		header: h,
		sig:    data[usable:total],
	}, nil
}

// Close releases the memory mapping, if any. All views into the database
// are invalid afterwards.
func (d *Database) Close() error {
	if d.mmap == nil {
		return nil
	}
	return d.mmap.close()
}

// Header returns the decoded database header.
func (d *Database) Header() Header {
	return d.header
}

// Size returns the total database length in bytes, signature included.
func (d *Database) Size() int64 {
	return int64(len(d.data))
}

// AuthenticatedLen returns the length in bytes of the range the signature
// covers.
func (d *Database) AuthenticatedLen() uint32 {
	return d.usable
}

// authenticated returns the byte range the signature covers.
func (d *Database) authenticated() []byte {
	return d.data[:d.usable]
}

// signature returns the trailing signature bytes.
func (d *Database) signature() []byte {
	return d.sig
}
