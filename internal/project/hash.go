package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest is a SHA-256 sum; source.File.Hash has the same layout.
type Digest [32]byte

// Sum hashes the concatenation of parts.
func Sum(parts ...[]byte) Digest {
	h := sha256.New()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out Digest
	h.Sum(out[:0])
	return out
}

// Combine derives a cache key from a content hash and setting fingerprints.
// Order matters.
func Combine(content Digest, parts ...Digest) Digest {
	chunks := make([][]byte, 0, len(parts)+1)
	chunks = append(chunks, content[:])
	for i := range parts {
		chunks = append(chunks, parts[i][:])
	}
	return Sum(chunks...)
}

// Hex is the cache file name.
func (d Digest) Hex() string { return hex.EncodeToString(d[:]) }

// Short is enough to tell keys apart in logs.
func (d Digest) Short() string { return d.Hex()[:12] }
