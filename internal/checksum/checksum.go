// Package checksum computes content digests used for change detection and
// content-addressed asset URLs.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Short truncates a hex digest to its first n characters.
func Short(sum string, n int) string {
	if n <= 0 || n > len(sum) {
		return sum
	}
	return sum[:n]
}
