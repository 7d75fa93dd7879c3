package regdb

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha1"
	"fmt"
)

// Verify authenticates the database against the keyring: SHA-1 over exactly
// the authenticated range (never the signature bytes), then RSA PKCS#1 v1.5
// verification of the trailing signature with each trusted key in order.
// Keys whose modulus size differs from the declared signature length are
// skipped without a verification attempt; the first key that verifies wins.
//
// This is a fail-closed gate. Until it returns nil, nothing read from the
// buffer may be treated as regulatory content. No state is retained about
// which key matched.
func (d *Database) Verify(ring *Keyring) error {
	digest := sha1.Sum(d.authenticated())
	sig := d.signature()

	for _, key := range ring.keys {
		if key.Size() != len(sig) {
			continue
		}
		if rsa.VerifyPKCS1v15(key, crypto.SHA1, digest[:], sig) == nil {
			return nil
		}
	}

	return fmt.Errorf("no trusted key (%d tried) verified %d signature bytes: %w",
		ring.Len(), len(sig), ErrSignatureInvalid)
}
