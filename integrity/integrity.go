// Package integrity computes and verifies content digests for marketplace
// documents.
package integrity

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/foliomarket/folio-go/errdefs"
)

// Digest returns the hex-encoded SHA-256 digest of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Verify recomputes the digest of data and compares it to wantHex.
// Returns an IntegrityMismatchError on disagreement.
func Verify(key string, data []byte, wantHex string) error {
	got := Digest(data)
	if got != wantHex {
		return &errdefs.IntegrityMismatchError{Key: key, Want: wantHex, Got: got}
	}
	return nil
}
