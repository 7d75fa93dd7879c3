package regdb

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Keyring is the ordered, immutable list of trusted signing keys. It is
// built once at startup and never mutated; verification tries keys in list
// order and accepts the first match.
type Keyring struct {
	keys []*rsa.PublicKey
}

// NewKeyring builds a keyring from already-parsed keys, preserving order.
func NewKeyring(keys ...*rsa.PublicKey) *Keyring {
	return &Keyring{keys: append([]*rsa.PublicKey(nil), keys...)}
}

// LoadKeyring reads every *.pem file in dir, in filename order, and parses
// each PEM block as an RSA public key (SPKI or PKCS#1). It fails if the
// directory yields no keys: an empty trust store can never verify anything,
// and failing at load time gives a better diagnostic than a signature
// mismatch later.
func LoadKeyring(dir string) (*Keyring, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.pem"))
	if err != nil {
		return nil, fmt.Errorf("list key directory: %w", err)
	}
	sort.Strings(paths)

	var keys []*rsa.PublicKey
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read key %s: %w", path, err)
		}
		for len(raw) > 0 {
			var block *pem.Block
			block, raw = pem.Decode(raw)
			if block == nil {
				break
			}
			key, err := parsePublicKey(block.Bytes)
			if err != nil {
				return nil, fmt.Errorf("parse key %s: %w", path, err)
			}
			keys = append(keys, key)
		}
	}

	if len(keys) == 0 {
		return nil, fmt.Errorf("no trusted keys in %s", dir)
	}
	return &Keyring{keys: keys}, nil
}

func parsePublicKey(der []byte) (*rsa.PublicKey, error) {
	if pub, err := x509.ParsePKIXPublicKey(der); err == nil {
		rsaPub, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, errors.New("not an RSA public key")
		}
		return rsaPub, nil
	}
	return x509.ParsePKCS1PublicKey(der)
}

// Len returns the number of trusted keys.
func (k *Keyring) Len() int {
	return len(k.keys)
}
