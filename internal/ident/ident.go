// Package ident parses and formats test-case identifiers.
//
// Identifiers follow the naming convention PREFIX_NUMBER for base cases and
// PREFIX_NUMBER_LETTERS for lettered variants (A..Z, AA, AB, ...). All
// functions are pure: unparseable input degrades to an unstructured result
// instead of failing.
package ident

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedID is the decomposition of a test-case identifier.
type ParsedID struct {
	Prefix     string // includes the trailing underscore, e.g. "II_EXF_"
	Number     int
	Variant    string // variant letters, empty for base cases
	BaseID     string
	HasVariant bool
}

var (
	variantRe = regexp.MustCompile(`^(.*_)(\d+)_([A-Z]+)$`)
	baseRe    = regexp.MustCompile(`^(.*_)(\d+)$`)
)

// Parse decomposes an identifier. The variant form is matched first, then
// the base form; anything else is treated as an unstructured prefix with
// number 0.
//
// BaseID is intentionally asymmetric: for variant ids it is rebuilt as
// prefix plus the unpadded number ("II_EXF_01_A" -> "II_EXF_1"), while for
// base ids it is the original identifier unchanged. Gap detection formats
// numbers independently and relies on this.
func Parse(id string) ParsedID {
	if m := variantRe.FindStringSubmatch(id); m != nil {
		n, _ := strconv.Atoi(m[2])
		return ParsedID{
			Prefix:     m[1],
			Number:     n,
			Variant:    m[3],
			BaseID:     m[1] + strconv.Itoa(n),
			HasVariant: true,
		}
	}
	if m := baseRe.FindStringSubmatch(id); m != nil {
		n, _ := strconv.Atoi(m[2])
		return ParsedID{
			Prefix: m[1],
			Number: n,
			BaseID: id,
		}
	}
	return ParsedID{Prefix: id, BaseID: id}
}

// VariantNumber converts a variant letter sequence to its 1-indexed
// bijective base-26 value: A=1, Z=26, AA=27, AB=28 and so on for any
// length. Returns 0 for an empty or non-letter sequence.
func VariantNumber(letters string) int {
	n := 0
	for _, r := range strings.ToUpper(letters) {
		if r < 'A' || r > 'Z' {
			return 0
		}
		n = n*26 + int(r-'A'+1)
	}
	return n
}

// NumberToVariant is the exact inverse of VariantNumber for n >= 1.
// Returns the empty string for zero or negative input.
func NumberToVariant(n int) string {
	if n <= 0 {
		return ""
	}
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}
