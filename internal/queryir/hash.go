package queryir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainQuery prefixes every query hash. The version suffix leaves room for
// a future change to the canonical form.
const DomainQuery = "dataspec/query/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Hash returns the content address of a rule tree. Two trees that differ
// only in key order or Unicode normalization hash identically.
func Hash(rule Rule) (string, error) {
	canonical, err := MarshalCanonical(rule)
	if err != nil {
		return "", fmt.Errorf("hash query: %w", err)
	}
	return hashWithDomain(DomainQuery, canonical), nil
}

// MustHash is like Hash but panics on error.
// Use only in tests or when the tree is known to be valid.
func MustHash(rule Rule) string {
	h, err := Hash(rule)
	if err != nil {
		panic(err)
	}
	return h
}
