// Package hashutil provides content checksums for backup verification
// logging.
package hashutil

import (
	"crypto/sha256"
	"fmt"
)

// ContentChecksum calculates the SHA256 checksum of a byte slice
func ContentChecksum(data []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data))
}
