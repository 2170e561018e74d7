// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// AdminKeyHeader carries the admin key on write requests
const AdminKeyHeader = "X-Admin-Key"

var (
	ErrMissingAdminKey = errors.New("admin key required")
	ErrInvalidAdminKey = errors.New("invalid admin key")
)

// ValidateAdminKey checks a presented key against the configured one.
// An empty configured key disables the check.
func ValidateAdminKey(presented, configured string) error {
	if configured == "" {
		return nil
	}
	if presented == "" {
		return ErrMissingAdminKey
	}

	// Fixed-size digests keep the comparison constant time
	want := sha256.Sum256([]byte(configured))
	got := sha256.Sum256([]byte(presented))
	if !hmac.Equal(got[:], want[:]) {
		return ErrInvalidAdminKey
	}
	return nil
}

// Fingerprint returns a short one-way digest of a key, safe to log.
// Operators can compare fingerprints without exposing the key.
func Fingerprint(key string) string {
	if key == "" {
		return ""
	}
	h := hmac.New(sha256.New, []byte("chamber-stats admin key"))
	h.Write([]byte(key))
	sum := h.Sum(nil)
	// First 16 hex chars (64 bits)
	return hex.EncodeToString(sum[:8])
}
