package gateways

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// checksumVerifier pins fetched license data to a SHA-256 digest
type checksumVerifier struct{}

// NewChecksumVerifier creates a new checksum verifier
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewChecksumVerifier() *checksumVerifier {
	return &checksumVerifier{}
}

// Digest returns the hex SHA-256 of data
func (v *checksumVerifier) Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// VerifyDigest compares data against an expected hex digest, with or without a "sha256:" prefix
func (v *checksumVerifier) VerifyDigest(data []byte, expected string) error {
	expected = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(expected)), "sha256:")
	actual := v.Digest(data)
	if actual != expected {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expected, actual)
	}
	return nil
}
