package blob

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// seams for deterministic naming in tests
var (
	nowMillis = func() int64 { return time.Now().UnixMilli() }
	randInt   = func() int64 { return rand.Int64N(1_000_000_000) }
)

// RepairWireName reinterprets a filename received over the wire from a
// single-byte-per-character transport encoding into full Unicode. Multipart
// uploads commonly deliver UTF-8 names misdecoded as Latin-1, which turns
// Hebrew into mojibake; mapping each rune back to its byte and re-reading
// the result as UTF-8 undoes that. The repair is applied only when every
// rune fits in a byte and the recovered bytes form valid UTF-8 — anything
// else is returned as received.
func RepairWireName(name string) string {
	repaired, err := charmap.ISO8859_1.NewEncoder().String(name)
	if err != nil {
		return name
	}
	if !utf8.ValidString(repaired) {
		return name
	}
	return repaired
}

// SanitizeBaseName replaces path-hostile characters with '_'. Non-ASCII
// letters, including Hebrew, pass through untouched.
func SanitizeBaseName(base string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '_'
		}
		return r
	}, base)
}

// NewStorageName derives a fresh, collision-resistant storage name from the
// (already repaired) original filename:
//
//	<epochMillis>-<randomInt>_<sanitizedBaseName><extension>
func NewStorageName(originalName string) string {
	ext := filepath.Ext(originalName)
	base := strings.TrimSuffix(filepath.Base(originalName), ext)
	return fmt.Sprintf("%d-%d_%s%s", nowMillis(), randInt(), SanitizeBaseName(base), ext)
}
