package regdb

import "errors"

var (
	// ErrOutOfBounds indicates an offset inside the database that does not
	// fit in the usable (authenticated) length.
	ErrOutOfBounds = errors.New("offset out of bounds")
	// ErrInvalidMagic indicates the magic number doesn't match.
	ErrInvalidMagic = errors.New("invalid database magic")
	// ErrInvalidVersion indicates an unsupported database format version.
	ErrInvalidVersion = errors.New("unsupported database version")
	// ErrInvalidSignatureLength indicates a declared signature length that
	// leaves no room for the database body.
	ErrInvalidSignatureLength = errors.New("invalid signature length")
	// ErrSignatureInvalid indicates no trusted key verified the signature.
	ErrSignatureInvalid = errors.New("database signature invalid")
	// ErrCountryNotFound indicates a full table scan found no match.
	ErrCountryNotFound = errors.New("country not found in database")
)
