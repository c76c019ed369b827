// Package grouping reconstructs the logical structure of a flat, sorted
// list of test-case identifiers: base cases, their lettered variant
// groups, and the gaps in either sequence. The emitted entry stream is
// what report renderers consume to decide section breaks and
// missing-case callouts; they perform no further grouping of their own.
package grouping

import (
	"sort"

	"github.com/mesh-intelligence/casebook/internal/ident"
)

// Entry kinds, in the order a renderer can expect them.
const (
	KindTestcase   = "testcase"
	KindGroupStart = "group-start"
	KindGroupEnd   = "group-end"
	KindBaseGap    = "base-gap"
	KindVariantGap = "variant-gap"
)

// Summary is the slice of a test case a report needs.
type Summary struct {
	ID       string   `json:"id"`
	Title    string   `json:"title,omitempty"`
	Status   string   `json:"status,omitempty"`
	Profiles []string `json:"profiles,omitempty"`
	Module   string   `json:"module,omitempty"`
	Category string   `json:"category,omitempty"`
}

// Entry is one element of the rendered sequence. Which fields are set
// depends on Kind: testcase entries carry Testcase (and IsBase inside a
// group), group-start carries GroupID and GroupSize, base-gap carries
// FromID/ToID/MissingCount, variant-gap carries FromVariant/ToVariant/
// MissingCount.
type Entry struct {
	Kind string `json:"kind"`

	Testcase *Summary `json:"testcase,omitempty"`
	IsBase   bool     `json:"isBase,omitempty"`

	GroupID   string `json:"groupId,omitempty"`
	GroupSize int    `json:"groupSize,omitempty"`

	FromID      string `json:"fromId,omitempty"`
	ToID        string `json:"toId,omitempty"`
	FromVariant string `json:"fromVariant,omitempty"`
	ToVariant   string `json:"toVariant,omitempty"`

	MissingCount int `json:"missingCount,omitempty"`
}

// slot gathers everything filed under one (prefix, number) key.
type slot struct {
	number   int
	base     *Summary
	variants []*Summary
}

// displayID is the identifier a gap entry shows for this slot: the real
// base id when the base case exists, otherwise the base id reconstructed
// from the first variant (unpadded, matching ident.Parse).
func (s *slot) displayID() string {
	if s.base != nil {
		return s.base.ID
	}
	if len(s.variants) > 0 {
		return ident.Parse(s.variants[0].ID).BaseID
	}
	return ""
}

// Build turns the sorted summary list into the tagged entry sequence.
// Input order only matters within equal identifiers; the output is fully
// re-ordered by prefix, number and variant letter value, so running Build
// twice over the same tree yields identical output.
func Build(cases []Summary) []Entry {
	byPrefix := make(map[string]map[int]*slot)
	for i := range cases {
		p := ident.Parse(cases[i].ID)
		numbers, ok := byPrefix[p.Prefix]
		if !ok {
			numbers = make(map[int]*slot)
			byPrefix[p.Prefix] = numbers
		}
		sl, ok := numbers[p.Number]
		if !ok {
			sl = &slot{number: p.Number}
			numbers[p.Number] = sl
		}
		if p.HasVariant {
			sl.variants = append(sl.variants, &cases[i])
		} else {
			sl.base = &cases[i]
		}
	}

	prefixes := make([]string, 0, len(byPrefix))
	for prefix := range byPrefix {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	entries := []Entry{}
	for _, prefix := range prefixes {
		numbers := byPrefix[prefix]
		order := make([]int, 0, len(numbers))
		for n := range numbers {
			order = append(order, n)
		}
		sort.Ints(order)

		var prev *slot
		for _, n := range order {
			cur := numbers[n]
			// The first number of a prefix never triggers a gap check.
			if prev != nil && cur.number-prev.number > 1 {
				entries = append(entries, Entry{
					Kind:         KindBaseGap,
					FromID:       prev.displayID(),
					ToID:         cur.displayID(),
					MissingCount: cur.number - prev.number - 1,
				})
			}
			entries = append(entries, emitSlot(cur)...)
			prev = cur
		}
	}
	return entries
}

// emitSlot renders one (prefix, number) slot: a lone base case stands on
// its own, anything with variants is bracketed by group markers.
func emitSlot(sl *slot) []Entry {
	if len(sl.variants) == 0 {
		return []Entry{{Kind: KindTestcase, Testcase: sl.base}}
	}

	sort.Slice(sl.variants, func(i, j int) bool {
		return ident.VariantNumber(ident.Parse(sl.variants[i].ID).Variant) <
			ident.VariantNumber(ident.Parse(sl.variants[j].ID).Variant)
	})

	size := len(sl.variants)
	if sl.base != nil {
		size++
	}
	entries := []Entry{{Kind: KindGroupStart, GroupID: sl.displayID(), GroupSize: size}}
	if sl.base != nil {
		entries = append(entries, Entry{Kind: KindTestcase, Testcase: sl.base, IsBase: true})
	}

	prevLetters := ""
	for _, v := range sl.variants {
		letters := ident.Parse(v.ID).Variant
		if gap := variantGap(prevLetters, letters); gap != nil {
			entries = append(entries, *gap)
		}
		entries = append(entries, Entry{Kind: KindTestcase, Testcase: v})
		prevLetters = letters
	}
	return append(entries, Entry{Kind: KindGroupEnd, GroupID: sl.displayID()})
}

// variantGap reports a missing stretch between two consecutive variant
// letters. The check only applies when both fall in the same
// letter-length range: crossing from Z to AA is never a gap, whatever the
// raw numeric distance.
func variantGap(prevLetters, letters string) *Entry {
	if prevLetters == "" || len(prevLetters) != len(letters) {
		return nil
	}
	prev, cur := ident.VariantNumber(prevLetters), ident.VariantNumber(letters)
	if cur-prev <= 1 {
		return nil
	}
	return &Entry{
		Kind:         KindVariantGap,
		FromVariant:  prevLetters,
		ToVariant:    letters,
		MissingCount: cur - prev - 1,
	}
}
