// Package idhash derives deterministic identifiers from record content.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// ComputeMovieID computes a deterministic movie_id using SHA256.
// Formula: SHA256(trimmed_title|year)
// Returns hex-encoded hash (64 characters).
func ComputeMovieID(title string, year int) string {
	data := fmt.Sprintf("%s|%d", strings.TrimSpace(title), year)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
