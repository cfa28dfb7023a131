// Package identifier composes human-readable role identifiers from a
// role-type prefix, the four-digit entry year and a sequence number scoped
// to the (prefix, year) pair. Sequence acquisition lives at the storage
// layer; this package owns the format.
package identifier

import (
	"fmt"
	"regexp"
	"strconv"
)

// SequenceDigits is the zero-padded width of the sequence component.
const SequenceDigits = 5

// MaxRetries bounds how often a caller may regenerate after an identifier
// collision before giving up.
const MaxRetries = 3

var pattern = regexp.MustCompile(`^([A-Z]{3})(\d{4})(\d{5})$`)

// Format builds an identifier such as STU202400042.
func Format(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s%04d%0*d", prefix, year, SequenceDigits, seq)
}

// Parse splits an identifier into its components. Returns ok=false when the
// value does not match the expected shape.
func Parse(id string) (prefix string, year int, seq int64, ok bool) {
	m := pattern.FindStringSubmatch(id)
	if m == nil {
		return "", 0, 0, false
	}
	year, _ = strconv.Atoi(m[2])
	seq, _ = strconv.ParseInt(m[3], 10, 64)
	return m[1], year, seq, true
}
