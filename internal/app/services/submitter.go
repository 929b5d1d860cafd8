package services

import (
	"crypto/sha256"
	"encoding/hex"
)

// submitterKeyLen is the number of hex characters kept from the digest.
// 64 bits is plenty for dedup while keeping the stored key short.
const submitterKeyLen = 16

// DeriveSubmitterKey maps a client address to the stable pseudonymous key
// that deduplicates ratings. The salt keeps raw addresses out of the database
// and makes the keys of one deployment useless against another.
func DeriveSubmitterKey(clientIP, salt string) string {
	sum := sha256.Sum256([]byte(clientIP + salt))
	return hex.EncodeToString(sum[:])[:submitterKeyLen]
}
