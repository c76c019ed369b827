package grouping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		switch e.Kind {
		case KindTestcase:
			out[i] = e.Testcase.ID
		default:
			out[i] = e.Kind
		}
	}
	return out
}

func summaries(idList ...string) []Summary {
	out := make([]Summary, len(idList))
	for i, id := range idList {
		out[i] = Summary{ID: id}
	}
	return out
}

func TestBuildPlainSequence(t *testing.T) {
	entries := Build(summaries("II_EXF_01", "II_EXF_02"))
	assert.Equal(t, []string{"II_EXF_01", "II_EXF_02"}, ids(entries))
}

func TestBuildBaseGap(t *testing.T) {
	entries := Build(summaries("II_EXF_01", "II_EXF_03", "II_EXF_04"))

	require.Equal(t, []string{"II_EXF_01", "base-gap", "II_EXF_03", "II_EXF_04"}, ids(entries))
	gap := entries[1]
	assert.Equal(t, "II_EXF_01", gap.FromID)
	assert.Equal(t, "II_EXF_03", gap.ToID)
	assert.Equal(t, 1, gap.MissingCount)
}

func TestBuildFirstNumberNeverGaps(t *testing.T) {
	// Starting at 03 does not report 01 and 02 as missing.
	entries := Build(summaries("II_EXF_03", "II_EXF_04"))
	assert.Equal(t, []string{"II_EXF_03", "II_EXF_04"}, ids(entries))
}

func TestBuildVariantGroup(t *testing.T) {
	entries := Build(summaries("II_EXF_01", "II_EXF_01_A", "II_EXF_01_B", "II_EXF_02"))

	require.Equal(t, []string{
		"group-start", "II_EXF_01", "II_EXF_01_A", "II_EXF_01_B", "group-end", "II_EXF_02",
	}, ids(entries))

	start := entries[0]
	assert.Equal(t, "II_EXF_01", start.GroupID)
	assert.Equal(t, 3, start.GroupSize)
	assert.True(t, entries[1].IsBase)
	assert.False(t, entries[2].IsBase)
}

func TestBuildGroupWithoutBase(t *testing.T) {
	entries := Build(summaries("II_EXF_01_A", "II_EXF_01_B"))

	require.Equal(t, []string{"group-start", "II_EXF_01_A", "II_EXF_01_B", "group-end"}, ids(entries))
	// Without a base case the group id is reconstructed unpadded.
	assert.Equal(t, "II_EXF_1", entries[0].GroupID)
	assert.Equal(t, 2, entries[0].GroupSize)
}

func TestBuildVariantGap(t *testing.T) {
	entries := Build(summaries("II_EXF_01", "II_EXF_01_A", "II_EXF_01_C"))

	require.Equal(t, []string{
		"group-start", "II_EXF_01", "II_EXF_01_A", "variant-gap", "II_EXF_01_C", "group-end",
	}, ids(entries))

	gap := entries[3]
	assert.Equal(t, "A", gap.FromVariant)
	assert.Equal(t, "C", gap.ToVariant)
	assert.Equal(t, 1, gap.MissingCount)
}

func TestBuildVariantGapLetterLengthBoundary(t *testing.T) {
	// Z (26) to AA (27) crosses the letter-length boundary and is never a
	// gap; neither is Z to AB, despite the numeric distance.
	entries := Build(summaries("II_EXF_01_Z", "II_EXF_01_AA"))
	assert.Equal(t, []string{"group-start", "II_EXF_01_Z", "II_EXF_01_AA", "group-end"}, ids(entries))

	entries = Build(summaries("II_EXF_01_Z", "II_EXF_01_AB"))
	assert.Equal(t, []string{"group-start", "II_EXF_01_Z", "II_EXF_01_AB", "group-end"}, ids(entries))

	// Within the two-letter range gaps are reported again.
	entries = Build(summaries("II_EXF_01_AA", "II_EXF_01_AC"))
	require.Equal(t, []string{"group-start", "II_EXF_01_AA", "variant-gap", "II_EXF_01_AC", "group-end"}, ids(entries))
	assert.Equal(t, "AA", entries[2].FromVariant)
	assert.Equal(t, "AC", entries[2].ToVariant)
	assert.Equal(t, 1, entries[2].MissingCount)
}

func TestBuildMultiplePrefixes(t *testing.T) {
	entries := Build(summaries("ZZ_TOP_01", "AA_LOW_01", "AA_LOW_03"))

	// Prefixes iterate in sorted order; numbering restarts per prefix.
	require.Equal(t, []string{"AA_LOW_01", "base-gap", "AA_LOW_03", "ZZ_TOP_01"}, ids(entries))
}

func TestBuildVariantsSortedNumerically(t *testing.T) {
	// Lexicographic input order AA < B, but numeric variant order is B < AA.
	entries := Build(summaries("II_EXF_01_AA", "II_EXF_01_B"))
	got := ids(entries)
	assert.Equal(t, []string{"group-start", "II_EXF_01_B", "II_EXF_01_AA", "group-end"}, got)
}

func TestBuildDeterministic(t *testing.T) {
	in := summaries("II_EXF_01", "II_EXF_01_A", "II_EXF_03", "OT_HER_02")
	assert.Equal(t, Build(in), Build(in))
}

func TestBuildEmpty(t *testing.T) {
	assert.Empty(t, Build(nil))
	assert.Empty(t, Build([]Summary{}))
}
