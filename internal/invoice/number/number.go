// Package number issues unique, human-readable invoice numbers of the
// form INV-<year>-<sequence>.
package number

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var numberRe = regexp.MustCompile(`^INV-(\d{4})-(\d{3,})$`)

// Format renders an invoice number for a year and sequence. The
// sequence is zero-padded to three digits and grows unpadded beyond
// that width.
func Format(year int, seq int64) string {
	return fmt.Sprintf("INV-%04d-%03d", year, seq)
}

// Prefix returns the number prefix for a year, used to scope storage
// lookups when seeding the sequence.
func Prefix(year int) string {
	return fmt.Sprintf("INV-%04d-", year)
}

// Parse splits an invoice number into year and sequence. ok is false
// when the value does not match the canonical format.
func Parse(value string) (year int, seq int64, ok bool) {
	match := numberRe.FindStringSubmatch(value)
	if match == nil {
		return 0, 0, false
	}
	year, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, 0, false
	}
	seq, err = strconv.ParseInt(match[2], 10, 64)
	if err != nil || seq <= 0 {
		return 0, 0, false
	}
	return year, seq, true
}

// YearOf returns the numbering year for an instant.
func YearOf(t time.Time) int {
	return t.UTC().Year()
}
