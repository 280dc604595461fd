// Package canonid normalizes heterogeneous record identifiers into one
// canonical, hyphenated 36-character form. Every comparison across the
// remote, seed and local sources goes through Normalize first.
package canonid

import (
	"strings"

	"github.com/google/uuid"
)

// padPrefix is the fixed prefix used when widening short identifiers
// (typically legacy numeric keys) into the canonical shape.
const padPrefix = "ffffffff-ffff-ffff-ffff-"

// padWidth is the number of characters a short identifier is left-padded to
// before being spliced after padPrefix.
const padWidth = 12

// New returns a freshly generated canonical identifier.
func New() string {
	return uuid.NewString()
}

// IsCanonical reports whether id already has the canonical shape:
// 36 characters, hyphens at the four standard offsets, hex digits elsewhere.
func IsCanonical(id string) bool {
	if len(id) != 36 {
		return false
	}
	for i := 0; i < len(id); i++ {
		switch i {
		case 8, 13, 18, 23:
			if id[i] != '-' {
				return false
			}
		default:
			if !isHexDigit(id[i]) {
				return false
			}
		}
	}
	return true
}

// Normalize converts an arbitrary identifier into the canonical form.
// It is pure, deterministic and idempotent, and never fails: inputs it
// cannot widen are returned unchanged so downstream comparisons simply
// miss instead of breaking.
//
// Rules, in order:
//   - canonical input is returned as-is;
//   - a 32-character unhyphenated value gets hyphens re-inserted at
//     offsets 8, 12, 16 and 20 (length is the only check, matching the
//     lenient behavior of the stores this layer reconciles);
//   - anything up to 12 characters is left-padded with '0' and spliced
//     after the fixed prefix;
//   - everything else passes through untouched.
func Normalize(id string) string {
	if IsCanonical(id) {
		return id
	}
	if len(id) == 32 {
		return id[:8] + "-" + id[8:12] + "-" + id[12:16] + "-" + id[16:20] + "-" + id[20:]
	}
	if len(id) > padWidth {
		return id
	}
	return padPrefix + strings.Repeat("0", padWidth-len(id)) + id
}

// Equal reports whether two identifiers refer to the same record once both
// are normalized.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

func isHexDigit(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	}
	return false
}
