package codec

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/faucetsdn/udmi-sub001/record"
)

// Fingerprint returns the lowercase hex SHA-256 of the compact canonical
// encoding of r. Equal records produce equal fingerprints across processes,
// except that timestamps are compared at millisecond precision by Equal and
// at full precision here.
func Fingerprint(r *record.Record) (string, error) {
	return defaultCodec.Fingerprint(r)
}

// Fingerprint is like the package-level Fingerprint but counts the encode
// and applies the codec's validation. Indentation is never part of the
// hashed bytes.
func (c *Codec) Fingerprint(r *record.Record) (string, error) {
	data, err := c.encode(r)
	if err != nil {
		c.metrics.encodeFailed()
		return "", err
	}
	c.metrics.encoded()
	return FingerprintBytes(data), nil
}

// FingerprintBytes returns the lowercase hex SHA-256 of already canonical
// bytes.
func FingerprintBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// VerifyFingerprint reports whether r currently has the expected
// fingerprint.
func VerifyFingerprint(r *record.Record, expected string) (bool, error) {
	got, err := Fingerprint(r)
	if err != nil {
		return false, err
	}
	return got == expected, nil
}
