package regdb

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"encoding/binary"
	"sync"
	"testing"
)

var (
	keyOnce      sync.Once
	cachedKey    *rsa.PrivateKey
	altKeyOnce   sync.Once
	cachedAlt    *rsa.PrivateKey
	smallKeyOnce sync.Once
	cachedSmall  *rsa.PrivateKey
)

// testKey returns a process-wide 2048-bit signing key.
func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	keyOnce.Do(func() {
		k, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			t.Fatalf("generate test key: %v", err)
		}
		cachedKey = k
	})
	return cachedKey
}

// testAltKey returns a second 2048-bit key, for signatures outside the
// trusted set whose size still matches.
func testAltKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	altKeyOnce.Do(func() {
		k, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			t.Fatalf("generate alternate test key: %v", err)
		}
		cachedAlt = k
	})
	return cachedAlt
}

// testSmallKey returns a 1024-bit key, used where a different modulus size
// matters.
func testSmallKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	smallKeyOnce.Do(func() {
		k, err := rsa.GenerateKey(rand.Reader, 1024)
		if err != nil {
			t.Fatalf("generate small test key: %v", err)
		}
		cachedSmall = k
	})
	return cachedSmall
}

// dbBuilder assembles regulatory database buffers for tests. Records are
// appended after the header; finish patches the header and signs the body.
type dbBuilder struct {
	buf []byte
}

func newDB() *dbBuilder {
	return &dbBuilder{buf: make([]byte, HeaderSize)}
}

func (b *dbBuilder) u32s(vs ...uint32) uint32 {
	off := uint32(len(b.buf))
	p := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.BigEndian.PutUint32(p[i*4:], v)
	}
	b.buf = append(b.buf, p...)
	return off
}

func (b *dbBuilder) freqRange(start, end, bw uint32) uint32 {
	return b.u32s(start, end, bw)
}

func (b *dbBuilder) powerRule(gain, eirp uint32) uint32 {
	return b.u32s(gain, eirp)
}

func (b *dbBuilder) rule(freqOff, powerOff, flags uint32) uint32 {
	return b.u32s(freqOff, powerOff, flags)
}

func (b *dbBuilder) collection(ruleOffs ...uint32) uint32 {
	return b.rawCollection(uint32(len(ruleOffs)), ruleOffs...)
}

// rawCollection writes a collection with an explicit count, which may
// disagree with the number of offsets actually present.
func (b *dbBuilder) rawCollection(count uint32, ruleOffs ...uint32) uint32 {
	return b.u32s(append([]uint32{count}, ruleOffs...)...)
}

type countrySpec struct {
	alpha2 string
	coll   uint32
}

func (b *dbBuilder) countries(cs ...countrySpec) (off, count uint32) {
	off = uint32(len(b.buf))
	for _, c := range cs {
		e := make([]byte, CountrySize)
		copy(e[0:2], c.alpha2)
		binary.BigEndian.PutUint32(e[4:8], c.coll)
		b.buf = append(b.buf, e...)
	}
	return off, uint32(len(cs))
}

func (b *dbBuilder) writeHeader(countryOff, countryCount, sigLen uint32) {
	binary.BigEndian.PutUint32(b.buf[0:4], MagicNumber)
	binary.BigEndian.PutUint32(b.buf[4:8], Version)
	binary.BigEndian.PutUint32(b.buf[8:12], countryOff)
	binary.BigEndian.PutUint32(b.buf[12:16], countryCount)
	binary.BigEndian.PutUint32(b.buf[16:20], sigLen)
}

// finish patches the header and appends an RSA/SHA-1 signature over the
// body.
func (b *dbBuilder) finish(t *testing.T, key *rsa.PrivateKey, countryOff, countryCount uint32) []byte {
	t.Helper()
	b.writeHeader(countryOff, countryCount, uint32(key.Size()))

	digest := sha1.Sum(b.buf)
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA1, digest[:])
	if err != nil {
		t.Fatalf("sign test database: %v", err)
	}
	return append(b.buf, sig...)
}

// finishUnsigned patches the header with a zero signature length. Only
// valid for tests that never reach Verify.
func (b *dbBuilder) finishUnsigned(countryOff, countryCount uint32) []byte {
	b.writeHeader(countryOff, countryCount, 0)
	return b.buf
}

// signedOneRuleDB builds the canonical single-country database: "US" with
// one rule (flags 0, 2400000-2483500 kHz, bandwidth 40000, gain 0,
// EIRP 2000).
func signedOneRuleDB(t *testing.T, key *rsa.PrivateKey) []byte {
	t.Helper()
	b := newDB()
	freq := b.freqRange(2400000, 2483500, 40000)
	pwr := b.powerRule(0, 2000)
	rule := b.rule(freq, pwr, 0)
	coll := b.collection(rule)
	off, n := b.countries(countrySpec{"US", coll})
	return b.finish(t, key, off, n)
}

func mustNew(t *testing.T, data []byte) *Database {
	t.Helper()
	db, err := New(data)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return db
}
